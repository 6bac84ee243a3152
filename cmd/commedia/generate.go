package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lukaszgryglicki/commedia/internal/config"
	"github.com/lukaszgryglicki/commedia/internal/dataset"
	"github.com/lukaszgryglicki/commedia/internal/geom"
	"github.com/lukaszgryglicki/commedia/internal/render"
	"github.com/lukaszgryglicki/commedia/internal/sampler"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <config>",
		Short: "Generate images and annotations for every session in a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := config.Load(a.fs, args[0])
			if err != nil {
				return err
			}
			s := a.settings
			g := dataset.New(dataset.Options{
				Fs:                 a.fs,
				Seed:               s.Seed,
				MaxFrustumTries:    s.Sampler.MaxFrustumTries,
				MaxVisibilityTries: s.Sampler.MaxVisibilityTries,
				Logger:             a.log,
				Renderer: func(out geom.Size) sampler.Renderer {
					return render.New(out, render.Options{
						Supersample: s.Render.Supersample,
						HeadRadius:  s.Render.HeadRadius,
					})
				},
			})
			reps, err := g.Run(cmd.Context(), sessions)
			for _, r := range reps {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d images from %05d, %s, %d outside frustum, %d invisible\n",
					r.Name, r.Images, r.First, humanize.Bytes(r.Bytes), r.Stats.OutsideFrustum, r.Stats.Invisible)
			}
			if err != nil {
				return err
			}
			a.log.Info("Run complete", zap.Int("sessions", len(reps)))
			return nil
		},
	}
}
