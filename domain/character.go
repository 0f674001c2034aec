package domain

import "fmt"

// CharacterID selects the voice and visual persona used for a request. The
// set is closed and validated at creation time.
type CharacterID string

const (
	CharacterMaya   CharacterID = "maya"
	CharacterLeo    CharacterID = "leo"
	CharacterSofia  CharacterID = "sofia"
	CharacterAadesh CharacterID = "aadesh"
)

type CharacterProfile struct {
	VoiceID        string
	StylePrompt    string
	AvatarImageKey string
}

var characterProfiles = map[CharacterID]CharacterProfile{
	CharacterMaya: {
		VoiceID:        "21m00Tcm4TlvDq8ikWAM",
		StylePrompt:    "warm watercolor illustration, soft light",
		AvatarImageKey: "characters/maya/avatar.png",
	},
	CharacterLeo: {
		VoiceID:        "TxGEqnHWrfWFTfGW9XjX",
		StylePrompt:    "bold flat vector illustration, bright palette",
		AvatarImageKey: "characters/leo/avatar.png",
	},
	CharacterSofia: {
		VoiceID:        "EXAVITQu4vr4xnSDxMaL",
		StylePrompt:    "gentle pastel storybook illustration",
		AvatarImageKey: "characters/sofia/avatar.png",
	},
	CharacterAadesh: {
		VoiceID:        "pNInz6obpgDQGcFmaJgB",
		StylePrompt:    "clean digital painting, natural tones",
		AvatarImageKey: "characters/aadesh/avatar.png",
	},
}

// ProfileFor resolves a character to its configuration. Unknown ids are an
// error rather than a silent default.
func ProfileFor(id CharacterID) (CharacterProfile, error) {
	profile, ok := characterProfiles[id]
	if !ok {
		return CharacterProfile{}, fmt.Errorf("unknown character %q", id)
	}
	return profile, nil
}
