// Package feedback defines the fire-and-forget audio collaborators the
// session controller drives: sound effects and spoken clues.
package feedback

// Sound identifies a sound effect.
type Sound string

const (
	SoundCorrect Sound = "correct"
	SoundWrong   Sound = "wrong"
	SoundWin     Sound = "win"
)

// Sounder plays sound effects. Implementations must not block.
type Sounder interface {
	Play(kind Sound)
}

// Speaker reads text aloud. Implementations must not block.
type Speaker interface {
	Speak(text string)
}

// Nop discards all feedback.
type Nop struct{}

func (Nop) Play(Sound)   {}
func (Nop) Speak(string) {}

// SounderFunc adapts a function to Sounder.
type SounderFunc func(kind Sound)

func (f SounderFunc) Play(kind Sound) { f(kind) }

// SpeakerFunc adapts a function to Speaker.
type SpeakerFunc func(text string)

func (f SpeakerFunc) Speak(text string) { f(text) }

// GatedSounder forwards to Next only while Enabled reports true.
type GatedSounder struct {
	Next    Sounder
	Enabled func() bool
}

// Play forwards kind when sound is enabled.
func (g GatedSounder) Play(kind Sound) {
	if g.Next == nil || (g.Enabled != nil && !g.Enabled()) {
		return
	}
	g.Next.Play(kind)
}
