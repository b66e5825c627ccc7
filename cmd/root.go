package cmd

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/polyrhythm-metronome/internal/audio"
	"github.com/iburimskiy/polyrhythm-metronome/internal/audio/speakersink"
	"github.com/iburimskiy/polyrhythm-metronome/internal/config"
	"github.com/iburimskiy/polyrhythm-metronome/internal/game"
	"github.com/iburimskiy/polyrhythm-metronome/internal/logging"
	"github.com/iburimskiy/polyrhythm-metronome/internal/metronome"
)

var (
	settingsPath string
	flagDecay    float64
	flagVolume   float64
	flagSound    string
	flagReset    string
	flagUnmute   bool
	flagTPS      int
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "polyrhythm [preset.json]",
	Short: "Visual polyrhythm metronome",
	Long: `Flashes one vertical bar per ratio, each subdividing a shared beat.
Drop a preset like {"bpm": 60, "ratios": [7, 3]} onto the window to load it.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	defaults := config.DefaultSettings()
	f := rootCmd.Flags()
	f.StringVar(&settingsPath, "settings", "", "YAML settings file")
	f.Float64Var(&flagDecay, "decay", defaults.DecayWindow, "seconds a fired bar stays visible")
	f.Float64Var(&flagVolume, "volume", defaults.Volume, "master volume (0..1)")
	f.StringVar(&flagSound, "sound", defaults.Sound, "click sample (.wav, .mp3 or .flac)")
	f.StringVar(&flagReset, "reset", defaults.ResetPolicy, "cycle reset policy: exact|modulo")
	f.BoolVar(&flagUnmute, "unmute", false, "start with clicks audible")
	f.IntVar(&flagTPS, "tps", defaults.TPS, "frame loop ticks per second")
	f.StringVar(&flagLogLevel, "log-level", defaults.LogLevel, "debug|info|warn|error")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// settings merges the settings file with the flags set on the command line.
func settings(cmd *cobra.Command) (config.Settings, error) {
	s := config.DefaultSettings()
	if settingsPath != "" {
		var err error
		if s, err = config.LoadSettings(settingsPath); err != nil {
			return s, err
		}
	}
	f := cmd.Flags()
	if f.Changed("decay") {
		s.DecayWindow = flagDecay
	}
	if f.Changed("volume") {
		s.Volume = flagVolume
	}
	if f.Changed("sound") {
		s.Sound = flagSound
	}
	if f.Changed("reset") {
		s.ResetPolicy = flagReset
	}
	if f.Changed("unmute") {
		s.Muted = !flagUnmute
	}
	if f.Changed("tps") {
		s.TPS = flagTPS
	}
	if f.Changed("log-level") {
		s.LogLevel = flagLogLevel
	}
	return s, errors.Wrap(s.Validate(), "invalid settings")
}

func run(cmd *cobra.Command, args []string) error {
	s, err := settings(cmd)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, s.LogLevel)

	cue, closeAudio := openAudio(s, log)
	defer closeAudio()

	app := metronome.New(s, cue, log)
	defer app.Close()

	if len(args) == 1 {
		if err := app.LoadFile(args[0]); err != nil {
			log.WithField("file", args[0]).Warn("starting without a preset")
		}
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(s.TPS)
	// Draw keeps pace with Update, otherwise short flashes fall between two vsyncs.
	ebiten.SetVsyncEnabled(false)

	if err := ebiten.RunGame(game.New(app, log)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// openAudio starts the click bank on the speaker. Without a device the metronome runs silent.
func openAudio(s config.Settings, log *logrus.Logger) (metronome.Cue, func()) {
	format := audio.Format(config.SampleRate)
	click, err := audio.OpenClick(s.Sound, format)
	if err != nil {
		log.WithError(err).WithField("sound", s.Sound).Warn("using synthesized click")
	}

	bank := audio.NewBank(click,
		audio.WithLocker(speakersink.Locker{}),
		audio.WithLogger(log),
		audio.WithVolume(s.Volume),
	)
	sink, err := speakersink.Start(bank.Format(), bank.Output())
	if err != nil {
		log.WithError(err).Error("audio device unavailable, clicks disabled")
		return nil, func() {}
	}
	return bank, func() {
		if err := sink.Close(); err != nil {
			log.WithError(err).Warn("closing audio device")
		}
	}
}
