package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lukaszgryglicki/commedia/internal/observability"
	"github.com/lukaszgryglicki/commedia/internal/settings"
)

// app is the state shared by all subcommands.
type app struct {
	fs           afero.Fs
	v            *viper.Viper
	settingsFile string
	settings     *settings.Settings
	log          *zap.Logger
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, v: viper.New()}
	root := &cobra.Command{
		Use:           "commedia",
		Short:         "Commedia generates annotated synthetic face images for gaze and head pose training.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load(a.v, a.settingsFile)
			if err != nil {
				observability.InitializeLogger(settings.LoggerConfig{Level: "info", Format: "console", ServiceName: "commedia"})
				return err
			}
			a.settings = s
			observability.InitializeLogger(s.Logger)
			a.log = observability.GetLogger()
			a.log.Debug("Starting commedia", zap.String("version", Version), zap.String("command", cmd.Name()))
			return nil
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVar(&a.settingsFile, "settings", "", "run settings file (default is ./commedia.yaml)")
	pf.Uint64("seed", 0, "random seed, 0 seeds from the clock")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("seed", pf.Lookup("seed"))
	_ = a.v.BindPFlag("logger.level", pf.Lookup("log-level"))

	root.AddCommand(
		newGenerateCmd(a),
		newCheckCmd(a),
		newInspectCmd(a),
		newVersionCmd(),
	)
	return root
}
