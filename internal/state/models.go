// Package state holds the root application aggregate and its durable store.
// One AppState exists per running instance; it is passed explicitly and
// owned by the caller, never accessed through globals.
package state

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/superhappyfuntimellc/Olivetti/pkg/hashvec"
	"github.com/superhappyfuntimellc/Olivetti/pkg/lane"
)

// Bay is a project-lifecycle stage. A project occupies exactly one bay.
type Bay string

const (
	BayNew   Bay = "NEW"
	BayRough Bay = "ROUGH"
	BayEdit  Bay = "EDIT"
	BayFinal Bay = "FINAL"
)

// Bays returns the bays in lifecycle order.
func Bays() []Bay {
	return []Bay{BayNew, BayRough, BayEdit, BayFinal}
}

// ParseBay returns the bay matching s, or (BayNew, false) if unknown.
func ParseBay(s string) (Bay, bool) {
	for _, b := range Bays() {
		if string(b) == s {
			return b, true
		}
	}
	return BayNew, false
}

// Next returns the following bay in the chain. ok is false at FINAL.
func (b Bay) Next() (Bay, bool) {
	order := Bays()
	for i, cur := range order {
		if cur == b && i < len(order)-1 {
			return order[i+1], true
		}
	}
	return b, false
}

// Style is a Style Engine preset. Neutral disables the style directive.
type Style string

const (
	StyleNeutral     Style = "Neutral"
	StyleNarrative   Style = "Narrative"
	StyleDescriptive Style = "Descriptive"
	StyleEmotional   Style = "Emotional"
	StyleLyrical     Style = "Lyrical"
	StyleSparse      Style = "Sparse"
	StyleOrnate      Style = "Ornate"
)

// Styles returns all styles in menu order.
func Styles() []Style {
	return []Style{StyleNeutral, StyleNarrative, StyleDescriptive, StyleEmotional, StyleLyrical, StyleSparse, StyleOrnate}
}

// Genre is a Genre Intelligence preset. Literary is the neutral default.
type Genre string

const (
	GenreLiterary     Genre = "Literary"
	GenreThriller     Genre = "Thriller"
	GenreNoir         Genre = "Noir"
	GenreHorror       Genre = "Horror"
	GenreRomance      Genre = "Romance"
	GenreFantasy      Genre = "Fantasy"
	GenreSciFi        Genre = "Sci-Fi"
	GenreHistorical   Genre = "Historical"
	GenreContemporary Genre = "Contemporary"
)

// Genres returns all genres in menu order.
func Genres() []Genre {
	return []Genre{GenreLiterary, GenreThriller, GenreNoir, GenreHorror, GenreRomance, GenreFantasy, GenreSciFi, GenreHistorical, GenreContemporary}
}

// POV is a point-of-view setting.
type POV string

const (
	POVFirst      POV = "First"
	POVCloseThird POV = "Close Third"
	POVOmniscient POV = "Omniscient"
)

// POVs returns all POV options.
func POVs() []POV {
	return []POV{POVFirst, POVCloseThird, POVOmniscient}
}

// Tense is a grammatical tense setting.
type Tense string

const (
	TensePast    Tense = "Past"
	TensePresent Tense = "Present"
)

// Tenses returns all tense options.
func Tenses() []Tense {
	return []Tense{TensePast, TensePresent}
}

// NoVoice is the trained-voice sentinel meaning "no voice selected".
const NoVoice = "None"

// Bank capacities. Oldest samples are evicted from the front on overflow,
// preserving most-recent-N ordering.
const (
	StyleBankCap = 250
	VaultLaneCap = 60
)

// StoryBibleSections is the fixed ordered set of story-bible section names.
var StoryBibleSections = []string{"Synopsis", "Genre/Style Notes", "World", "Characters", "Outline"}

// StyleBank maps a lane to its ordered sample sequence. Insertion order is
// relevant: retrieval tie-breaking and eviction both depend on it.
type StyleBank map[lane.Lane][]hashvec.Sample

// NewStyleBank returns a bank with an empty slot for every lane.
func NewStyleBank() StyleBank {
	bank := make(StyleBank, len(lane.Lanes()))
	for _, l := range lane.Lanes() {
		bank[l] = []hashvec.Sample{}
	}
	return bank
}

// add appends a sample to the lane, evicting from the front past cap.
func (b StyleBank) add(l lane.Lane, s hashvec.Sample, cap int) {
	samples := append(b[l], s)
	if len(samples) > cap {
		samples = samples[len(samples)-cap:]
	}
	b[l] = samples
}

// StyleControl is the Style Engine toggle.
type StyleControl struct {
	Enabled   bool    `json:"enabled"`
	Style     Style   `json:"style"`
	Intensity float64 `json:"intensity"`
}

// GenreControl is the Genre Intelligence toggle.
type GenreControl struct {
	Enabled   bool    `json:"enabled"`
	Genre     Genre   `json:"genre"`
	Intensity float64 `json:"intensity"`
}

// VoiceControl is the Trained Voice toggle.
type VoiceControl struct {
	Enabled bool   `json:"enabled"`
	Voice   string `json:"voice"`
}

// Technical holds the always-on POV and tense directives.
type Technical struct {
	POV   POV   `json:"pov"`
	Tense Tense `json:"tense"`
}

// VoiceBible is the full set of style, genre, and technical controls plus
// the sample banks that steer generation.
type VoiceBible struct {
	Intensity  float64              `json:"aiIntensity"`
	Style      StyleControl         `json:"styleEngine"`
	Genre      GenreControl         `json:"genreIntelligence"`
	Voice      VoiceControl         `json:"trainedVoice"`
	MatchStyle string               `json:"matchMyStyle"`
	VoiceLock  string               `json:"voiceLock"`
	Technical  Technical            `json:"technical"`
	StyleBanks StyleBank            `json:"styleBanks"`
	VoiceVault map[string]StyleBank `json:"voiceVault"`
}

// NewVoiceBible returns the default Voice Bible configuration.
func NewVoiceBible() VoiceBible {
	return VoiceBible{
		Intensity:  0.5,
		Style:      StyleControl{Enabled: false, Style: StyleNeutral, Intensity: 0.5},
		Genre:      GenreControl{Enabled: false, Genre: GenreLiterary, Intensity: 0.5},
		Voice:      VoiceControl{Enabled: false, Voice: NoVoice},
		Technical:  Technical{POV: POVCloseThird, Tense: TensePast},
		StyleBanks: NewStyleBank(),
		VoiceVault: map[string]StyleBank{},
	}
}

// AddStyleSample vectorizes text and appends it to the lane's style bank.
func (vb *VoiceBible) AddStyleSample(l lane.Lane, text string) {
	if vb.StyleBanks == nil {
		vb.StyleBanks = NewStyleBank()
	}
	vb.StyleBanks.add(l, hashvec.NewSample(text), StyleBankCap)
}

// AddVoiceSample vectorizes text and appends it to the named voice's lane
// bank, creating the voice on first use.
func (vb *VoiceBible) AddVoiceSample(voice string, l lane.Lane, text string) {
	if vb.VoiceVault == nil {
		vb.VoiceVault = map[string]StyleBank{}
	}
	bank, ok := vb.VoiceVault[voice]
	if !ok {
		bank = NewStyleBank()
		vb.VoiceVault[voice] = bank
	}
	bank.add(l, hashvec.NewSample(text), VaultLaneCap)
}

// Project is a single piece of writing moving through the bays.
type Project struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Draft      string            `json:"draft"`
	Bay        Bay               `json:"bay"`
	CreatedAt  int64             `json:"created"`
	ModifiedAt int64             `json:"modified"`
	StoryBible map[string]string `json:"storyBible"`
	ToolOutput string            `json:"toolOutput"`
}

// Touch updates the modification timestamp.
func (p *Project) Touch() {
	p.ModifiedAt = time.Now().UnixMilli()
}

// AppState is the root aggregate: all projects, the bay map, the Voice
// Bible, and the active selection. Owned exclusively by the Store.
type AppState struct {
	Projects   map[string]*Project `json:"projects"`
	BaySlots   map[Bay]string      `json:"bayState"`
	VoiceBible VoiceBible          `json:"voiceBible"`
	CurrentBay Bay                 `json:"currentBay"`
	CurrentID  string              `json:"currentProjectId"`
}

// NewAppState returns the freshly initialized empty state: no projects,
// all bay slots empty, default Voice Bible, bay = NEW.
func NewAppState() *AppState {
	slots := make(map[Bay]string, len(Bays()))
	for _, b := range Bays() {
		slots[b] = ""
	}
	return &AppState{
		Projects:   map[string]*Project{},
		BaySlots:   slots,
		VoiceBible: NewVoiceBible(),
		CurrentBay: BayNew,
	}
}

// ErrProjectNotFound is returned when a project id is absent from state.
var ErrProjectNotFound = errors.New("project not found")

// ErrBayOccupied is returned when a bay slot already holds a project.
var ErrBayOccupied = errors.New("bay slot occupied")

// CreateProject creates a project in the given bay, assigns it to that
// bay's slot, and makes it the active project.
func (st *AppState) CreateProject(title string, bay Bay) (*Project, error) {
	if occupant := st.BaySlots[bay]; occupant != "" {
		return nil, ErrBayOccupied
	}

	now := time.Now().UnixMilli()
	p := &Project{
		ID:         "proj_" + uuid.NewString(),
		Title:      title,
		Bay:        bay,
		CreatedAt:  now,
		ModifiedAt: now,
		StoryBible: emptyStoryBible(),
	}

	st.Projects[p.ID] = p
	st.BaySlots[bay] = p.ID
	st.CurrentBay = bay
	st.CurrentID = p.ID
	return p, nil
}

// Project returns the project with the given id.
func (st *AppState) Project(id string) (*Project, error) {
	p, ok := st.Projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

// Current returns the active project, or ErrProjectNotFound when no
// project is selected.
func (st *AppState) Current() (*Project, error) {
	if st.CurrentID == "" {
		return nil, ErrProjectNotFound
	}
	return st.Project(st.CurrentID)
}

// Promote advances a project one bay forward. The old slot is cleared and
// the new slot set as a single in-memory transition, so no save can ever
// observe the project in neither or both slots. moved is false when the
// project already sits at FINAL (an informational no-op, not an error) or
// when the next slot is occupied by another project.
func (st *AppState) Promote(id string) (Bay, bool, error) {
	p, err := st.Project(id)
	if err != nil {
		return "", false, err
	}

	next, ok := p.Bay.Next()
	if !ok {
		return p.Bay, false, nil
	}
	if occupant := st.BaySlots[next]; occupant != "" && occupant != id {
		return p.Bay, false, ErrBayOccupied
	}

	st.BaySlots[p.Bay] = ""
	p.Bay = next
	st.BaySlots[next] = id
	if st.CurrentID == id {
		st.CurrentBay = next
	}
	p.Touch()
	return next, true, nil
}

func emptyStoryBible() map[string]string {
	sb := make(map[string]string, len(StoryBibleSections))
	for _, s := range StoryBibleSections {
		sb[s] = ""
	}
	return sb
}
