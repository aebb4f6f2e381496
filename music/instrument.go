package music

import "fmt"

// Instrument is a General MIDI program number (0-127).
type Instrument uint8

// General MIDI instruments, in program order.
const (
	Piano Instrument = iota
	BrightPiano
	ElectricGrand
	HonkyTonkPiano
	ElectricPiano1
	ElectricPiano2
	Harpsichord
	Clavinet

	Celesta
	Glockenspiel
	MusicBox
	Vibraphone
	Marimba
	Xylophone
	TubularBell
	Dulcimer

	DrawbarOrgan
	PercussiveOrgan
	RockOrgan
	ChurchOrgan
	ReedOrgan
	Accordion
	Harmonica
	TangoAccordion

	NylonStrGuitar
	SteelStringGuitar
	JazzElectricGuitar
	CleanElectricGuitar
	MutedElectricGuitar
	OverdriveGuitar
	DistortedGuitar
	GuitarHarmonics

	AcousticBass
	FingeredBass
	PickedBass
	FretlessBass
	SlapBass1
	SlapBass2
	SynthBass1
	SynthBass2

	Violin
	Viola
	Cello
	Contrabass
	TremoloStrings
	PizzicatoStrings
	OrchestralHarp
	Timpani

	StringEnsemble1
	StringEnsemble2
	SynthStrings1
	SynthStrings2
	ChoirAahs
	VoiceOohs
	SynthVoice
	OrchestraHit

	Trumpet
	Trombone
	Tuba
	MutedTrumpet
	FrenchHorn
	BrassSection
	SynthBrass1
	SynthBrass2

	SopranoSax
	AltoSax
	TenorSax
	BaritoneSax
	Oboe
	EnglishHorn
	Bassoon
	Clarinet

	Piccolo
	Flute
	Recorder
	PanFlute
	BottleBlow
	Shakuhachi
	Whistle
	Ocarina

	SquareWave
	SawWave
	SynCalliope
	ChifferLead
	Charang
	SoloVox
	FifthSawWave
	BassAndLead

	Fantasia
	WarmPad
	Polysynth
	SpaceVoice
	BowedGlass
	MetalPad
	HaloPad
	SweepPad

	IceRain
	Soundtrack
	Crystal
	Atmosphere
	Brightness
	Goblin
	EchoDrops
	StarTheme

	Sitar
	Banjo
	Shamisen
	Koto
	Kalimba
	Bagpipe
	Fiddle
	Shanai

	TinkleBell
	Agogo
	SteelDrums
	Woodblock
	TaikoDrum
	MelodicTom
	SynthDrum
	ReverseCymbal

	GuitarFretNoise
	BreathNoise
	Seashore
	BirdTweet
	TelephoneRing
	Helicopter
	Applause
	Gunshot
)

var instrumentNames = [128]string{
	"piano", "bright-piano", "electric-grand", "honky-tonk-piano",
	"electric-piano-1", "electric-piano-2", "harpsichord", "clavinet",
	"celesta", "glockenspiel", "music-box", "vibraphone",
	"marimba", "xylophone", "tubular-bell", "dulcimer",
	"drawbar-organ", "percussive-organ", "rock-organ", "church-organ",
	"reed-organ", "accordion", "harmonica", "tango-accordion",
	"nylon-str-guitar", "steel-string-guitar", "jazz-electric-guitar", "clean-electric-guitar",
	"muted-electric-guitar", "overdrive-guitar", "distorted-guitar", "guitar-harmonics",
	"acoustic-bass", "fingered-bass", "picked-bass", "fretless-bass",
	"slap-bass-1", "slap-bass-2", "synth-bass-1", "synth-bass-2",
	"violin", "viola", "cello", "contrabass",
	"tremolo-strings", "pizzicato-strings", "orchestral-harp", "timpani",
	"string-ensemble-1", "string-ensemble-2", "synth-strings-1", "synth-strings-2",
	"choir-aahs", "voice-oohs", "synth-voice", "orchestra-hit",
	"trumpet", "trombone", "tuba", "muted-trumpet",
	"french-horn", "brass-section", "synth-brass-1", "synth-brass-2",
	"soprano-sax", "alto-sax", "tenor-sax", "baritone-sax",
	"oboe", "english-horn", "bassoon", "clarinet",
	"piccolo", "flute", "recorder", "pan-flute",
	"bottle-blow", "shakuhachi", "whistle", "ocarina",
	"square-wave", "saw-wave", "syn-calliope", "chiffer-lead",
	"charang", "solo-vox", "fifth-saw-wave", "bass-and-lead",
	"fantasia", "warm-pad", "polysynth", "space-voice",
	"bowed-glass", "metal-pad", "halo-pad", "sweep-pad",
	"ice-rain", "soundtrack", "crystal", "atmosphere",
	"brightness", "goblin", "echo-drops", "star-theme",
	"sitar", "banjo", "shamisen", "koto",
	"kalimba", "bagpipe", "fiddle", "shanai",
	"tinkle-bell", "agogo", "steel-drums", "woodblock",
	"taiko-drum", "melodic-tom", "synth-drum", "reverse-cymbal",
	"guitar-fret-noise", "breath-noise", "seashore", "bird-tweet",
	"telephone-ring", "helicopter", "applause", "gunshot",
}

// Program returns the MIDI program number of the instrument.
func (i Instrument) Program() uint8 {
	return uint8(i) & 0x7F
}

func (i Instrument) String() string {
	if int(i) < len(instrumentNames) {
		return instrumentNames[i]
	}
	return fmt.Sprintf("program-%d", uint8(i))
}

// ParseInstrument looks up an instrument by its name as printed by String.
func ParseInstrument(name string) (Instrument, error) {
	for i, n := range instrumentNames {
		if n == name {
			return Instrument(i), nil
		}
	}
	return 0, fmt.Errorf("unknown instrument %q", name)
}
