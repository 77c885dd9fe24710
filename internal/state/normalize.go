package state

import (
	"github.com/superhappyfuntimellc/Olivetti/pkg/lane"
)

// Normalize repairs a state loaded from a persisted document. Unknown
// enum values are reset to defaults, missing maps are materialized, and
// sample banks are restricted to the lane enum — a malformed field never
// fails the whole load.
func (st *AppState) Normalize() {
	if st.Projects == nil {
		st.Projects = map[string]*Project{}
	}
	if st.BaySlots == nil {
		st.BaySlots = map[Bay]string{}
	}
	for _, b := range Bays() {
		if _, ok := st.BaySlots[b]; !ok {
			st.BaySlots[b] = ""
		}
	}
	// Drop slots keyed by anything outside the bay enum.
	for b := range st.BaySlots {
		if _, ok := ParseBay(string(b)); !ok {
			delete(st.BaySlots, b)
		}
	}

	if _, ok := ParseBay(string(st.CurrentBay)); !ok {
		st.CurrentBay = BayNew
	}
	if st.CurrentID != "" {
		if _, ok := st.Projects[st.CurrentID]; !ok {
			st.CurrentID = ""
		}
	}

	for id, p := range st.Projects {
		if p == nil {
			delete(st.Projects, id)
			continue
		}
		if _, ok := ParseBay(string(p.Bay)); !ok {
			p.Bay = BayNew
		}
		if p.StoryBible == nil {
			p.StoryBible = emptyStoryBible()
		} else {
			for _, s := range StoryBibleSections {
				if _, ok := p.StoryBible[s]; !ok {
					p.StoryBible[s] = ""
				}
			}
		}
	}

	st.VoiceBible.normalize()
}

func (vb *VoiceBible) normalize() {
	vb.Intensity = clamp01(vb.Intensity)
	vb.Style.Intensity = clamp01(vb.Style.Intensity)
	vb.Genre.Intensity = clamp01(vb.Genre.Intensity)

	if !validStyle(vb.Style.Style) {
		vb.Style.Style = StyleNeutral
	}
	if !validGenre(vb.Genre.Genre) {
		vb.Genre.Genre = GenreLiterary
	}
	if vb.Voice.Voice == "" {
		vb.Voice.Voice = NoVoice
	}
	if !validPOV(vb.Technical.POV) {
		vb.Technical.POV = POVCloseThird
	}
	if !validTense(vb.Technical.Tense) {
		vb.Technical.Tense = TensePast
	}

	vb.StyleBanks = normalizeBank(vb.StyleBanks)
	if vb.VoiceVault == nil {
		vb.VoiceVault = map[string]StyleBank{}
	}
	for name, bank := range vb.VoiceVault {
		vb.VoiceVault[name] = normalizeBank(bank)
	}

	// A selected voice that no longer exists in the vault resets to None.
	if vb.Voice.Voice != NoVoice {
		if _, ok := vb.VoiceVault[vb.Voice.Voice]; !ok {
			vb.Voice.Voice = NoVoice
		}
	}
}

// normalizeBank ensures a slot for every lane and drops unknown lanes.
func normalizeBank(bank StyleBank) StyleBank {
	clean := NewStyleBank()
	for l, samples := range bank {
		if _, ok := lane.Parse(string(l)); ok && samples != nil {
			clean[l] = samples
		}
	}
	return clean
}

func validStyle(s Style) bool {
	for _, v := range Styles() {
		if v == s {
			return true
		}
	}
	return false
}

func validGenre(g Genre) bool {
	for _, v := range Genres() {
		if v == g {
			return true
		}
	}
	return false
}

func validPOV(p POV) bool {
	for _, v := range POVs() {
		if v == p {
			return true
		}
	}
	return false
}

func validTense(t Tense) bool {
	for _, v := range Tenses() {
		if v == t {
			return true
		}
	}
	return false
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
