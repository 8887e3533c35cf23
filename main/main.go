package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/softmatterlab/cppm"
	"github.com/softmatterlab/cppm/analysis"
	"github.com/softmatterlab/cppm/energy"
	cppmio "github.com/softmatterlab/cppm/io"
	"github.com/softmatterlab/cppm/mc"
	"github.com/softmatterlab/cppm/particle"
)

func main() {
	cfg := cppmio.DefaultRunConfig()
	var (
		configFile    string
		exampleConfig bool
	)

	cmd := &cobra.Command{
		Use:   "cppm",
		Short: "Generate charged particle configurations on a sphere",
		Long: "cppm places point charges on the surface of a sphere and relaxes them\n" +
			"with Metropolis-Hastings Monte Carlo under a softcore Coulomb energy,\n" +
			"optionally restrained toward a target dipole moment. The final\n" +
			"configuration is written as .xyz or .pqr for downstream simulation.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if exampleConfig {
				fmt.Print(cppmio.ExampleRunFile)
				return nil
			}
			if configFile != "" {
				fileCfg, err := cppmio.ReadRunConfig(configFile)
				if err != nil {
					return err
				}
				mergeUnchanged(cmd, &cfg, &fileCfg)
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Output, "file", "o", "", "output structure (.xyz or .pqr)")
	flags.Float64VarP(&cfg.Radius, "radius", "r", cfg.Radius, "sphere radius (A)")
	flags.IntVarP(&cfg.Steps, "steps", "s", cfg.Steps, "number of Monte Carlo iterations")
	flags.IntVarP(&cfg.NumTotal, "num-total", "N", cfg.NumTotal, "total number of particles")
	flags.IntVarP(&cfg.NumPlus, "plus", "p", cfg.NumPlus, "number of positive (+1e) particles")
	flags.IntVarP(&cfg.NumMinus, "minus", "m", cfg.NumMinus, "number of negative (-1e) particles")
	flags.Float64VarP(&cfg.BjerrumLength, "bjerrum-length", "b", cfg.BjerrumLength, "Bjerrum length (A)")
	flags.Int64Var(&cfg.Seed, "seed", 0, "random seed; 0 derives one from the clock")
	flags.Float64Var(&cfg.Displacement, "displacement", cfg.Displacement, "max angular displacement per move (rad)")
	flags.BoolVar(&cfg.SwapMoves, "swap", false, "enable charge-swap moves")
	flags.Float64Var(&cfg.TargetDipole, "dipole", 0, "target dipole moment (D)")
	flags.Float64Var(&cfg.DipoleForce, "dipole-force", 0,
		"dipole restraint force constant (kT/(eA)^2); 0 disables the restraint")
	flags.StringVar(&configFile, "config", "", "gcfg run configuration file; explicit flags override it")
	flags.BoolVar(&exampleConfig, "example-config", false, "print an example run configuration and exit")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err.Error())
	}
}

// mergeUnchanged copies config-file values into cfg for every flag the user
// did not set explicitly, so flags take precedence over the file.
func mergeUnchanged(cmd *cobra.Command, cfg, fileCfg *cppmio.RunConfig) {
	f := cmd.Flags()
	if !f.Changed("file") {
		cfg.Output = fileCfg.Output
	}
	if !f.Changed("radius") {
		cfg.Radius = fileCfg.Radius
	}
	if !f.Changed("steps") {
		cfg.Steps = fileCfg.Steps
	}
	if !f.Changed("num-total") {
		cfg.NumTotal = fileCfg.NumTotal
	}
	if !f.Changed("plus") {
		cfg.NumPlus = fileCfg.NumPlus
	}
	if !f.Changed("minus") {
		cfg.NumMinus = fileCfg.NumMinus
	}
	if !f.Changed("bjerrum-length") {
		cfg.BjerrumLength = fileCfg.BjerrumLength
	}
	if !f.Changed("seed") {
		cfg.Seed = fileCfg.Seed
	}
	if !f.Changed("displacement") {
		cfg.Displacement = fileCfg.Displacement
	}
	if !f.Changed("swap") {
		cfg.SwapMoves = fileCfg.SwapMoves
	}
	if !f.Changed("dipole") {
		cfg.TargetDipole = fileCfg.TargetDipole
	}
	if !f.Changed("dipole-force") {
		cfg.DipoleForce = fileCfg.DipoleForce
	}
}

// momentsStride keeps the sampled trace around a thousand points regardless
// of the step count.
func momentsStride(steps int) int {
	stride := steps / 1000
	if stride < 1 {
		stride = 1
	}
	return stride
}

func run(cfg cppmio.RunConfig) error {
	if err := cfg.CheckInit(); err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ens, err := particle.New(rng, cfg.Radius, cfg.NumTotal, cfg.NumPlus, cfg.NumMinus)
	if err != nil {
		return err
	}

	ham := &energy.Hamiltonian{
		Nonbonded: &energy.Nonbonded{Pair: energy.Coulomb{BjerrumLength: cfg.BjerrumLength}},
	}
	if cfg.DipoleForce > 0 {
		ham.Restraint = &energy.DipoleRestraint{
			Target:     cppm.DebyeToEAngstrom(cfg.TargetDipole),
			ForceConst: cfg.DipoleForce,
		}
	}

	sys, err := mc.NewSystem(ens, ham)
	if err != nil {
		return err
	}

	prop := &mc.Propagator{}
	prop.Push(&mc.Displace{MaxAngle: cfg.Displacement})
	if cfg.SwapMoves {
		prop.Push(&mc.SwapCharges{})
	}

	moments := &analysis.Moments{Stride: momentsStride(cfg.Steps)}
	bar := progressbar.Default(int64(cfg.Steps), "sampling")
	err = prop.Run(sys, rng, cfg.Steps, func(step int) {
		bar.Add(1)
		moments.Sample(step, ens, sys.Energy())
	})
	if err != nil {
		return err
	}
	bar.Finish()

	var accepted, proposed uint64
	for _, m := range prop.Moves() {
		st := m.Stats()
		accepted += st.Accepted
		proposed += st.Proposed
		fmt.Printf("%s move acceptance ratio = %.2f (%d/%d)\n",
			m.Name(), st.AcceptanceRatio(), st.Accepted, st.Proposed)
	}
	fmt.Print(moments)

	props := analysis.GlobalProperties(ens)
	fmt.Print(props)

	sum := analysis.Summary{
		Dipole: props.Dipole,
		Energy: sys.Energy(),
	}
	if proposed > 0 {
		sum.AcceptanceRatio = float64(accepted) / float64(proposed)
	}
	return cppmio.SaveCoordinates(cfg.Output, ens, sum)
}
