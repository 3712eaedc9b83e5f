package cmd

import (
	"github.com/spf13/cobra"

	"github.com/olivierh59500/particle-links/internal/engine"
	"github.com/olivierh59500/particle-links/internal/scene"
)

func runCmd() *cobra.Command {
	var (
		count int
		warp  bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the particle window",
		Long: "Open the particle window. Move the pointer or click to repel particles.\n" +
			"Keys: space pause, w warp, t triangles, m mask, e elements, h hud, s save, l load.",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOptions(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("particles") {
				o.Particles.Number = count
			}
			if cmd.Flags().Changed("warp") {
				o.Links.Warp = warp
			}

			e, err := engine.New(o)
			if err != nil {
				return err
			}
			return scene.Run(scene.New(e, configPath), "Particle Links")
		},
	}
	cmd.Flags().IntVarP(&count, "particles", "n", 0, "Number of particles (overrides the options file)")
	cmd.Flags().BoolVar(&warp, "warp", false, "Link particles across canvas edges")
	return cmd
}
