package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/commedia/internal/config"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <config>",
		Short: "Parse a config file and print its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := config.Load(a.fs, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, s := range sessions {
				printSession(w, s)
			}
			fmt.Fprintf(w, "%d sessions OK\n", len(sessions))
			return nil
		},
	}
}

func printSession(w io.Writer, s *config.Session) {
	fmt.Fprintf(w, "%s:\n", s.Name)
	fmt.Fprintf(w, "  path: %v\n  csv: %s\n  count: %d\n", s.Path, s.CSV, s.Count)
	fmt.Fprintf(w, "  style: %v\n  format: %v\n  size: %d,%d\n", s.Style, s.Format, s.Size.W, s.Size.H)
	fmt.Fprintf(w, "  head pos: %v, %v, %v\n", s.HeadPos.X, s.HeadPos.Y, s.HeadPos.Z)
	fmt.Fprintf(w, "  head dir: %v, %v, %v\n", s.HeadDir.Y, s.HeadDir.P, s.HeadDir.B)
	fmt.Fprintf(w, "  light dir: %v, %v, %v\n", s.LightDir.Y, s.LightDir.P, s.LightDir.B)
	switch s.Background.Kind {
	case config.BackgroundImage:
		fmt.Fprintf(w, "  background: image %s\n", s.Background.Dir)
	default:
		c := s.Background.Color
		fmt.Fprintf(w, "  background: color %v, %v, %v\n", c.R, c.G, c.B)
	}
}
