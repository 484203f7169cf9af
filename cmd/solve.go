/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ghodss/yaml"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gosoliton/InputParameters"
	"github.com/notargets/gosoliton/linalg"
	"github.com/notargets/gosoliton/model_problems/Soliton2D"
	"github.com/notargets/gosoliton/utils"
)

type ModelSoliton struct {
	ICFile      string
	OutputFile  string
	SummaryFile string
	Plot        bool
	Profile     string // cpu or mem
	Perf        bool
}

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Compute the soliton profile and report the Newton iteration history",
	Long: `
Solves the two field soliton problem on an Nz x Nx Chebyshev grid. Parameters
come from the defaults, then the input file (-I), then the config file and
GOSOLITON_* environment variables, then the command line flags,

gosoliton solve -I input.yaml -o fields.csv --plot`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ms = &ModelSoliton{}
			ip *InputParameters.SolitonParameters
		)
		ms.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		ms.OutputFile, _ = cmd.Flags().GetString("output")
		ms.SummaryFile, _ = cmd.Flags().GetString("summary")
		ms.Plot, _ = cmd.Flags().GetBool("plot")
		ms.Profile, _ = cmd.Flags().GetString("profile")
		ms.Perf, _ = cmd.Flags().GetBool("perf")
		if ip, err = processInput(ms); err != nil {
			return
		}
		switch ms.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		default:
			return fmt.Errorf("unknown profile mode %q, use cpu or mem", ms.Profile)
		}
		out := cmd.OutOrStdout()
		if !ms.Perf {
			_, err = RunSoliton(out, ms, ip)
			return
		}
		return measure(out, func() (err error) {
			_, err = RunSoliton(out, ms, ip)
			return
		})
	},
}

// Keys shared between the command line flags, the config file and the environment
var paramKeys = []string{"mu", "eps", "kmax", "lz", "lx", "nz", "nx", "backend"}

func init() {
	rootCmd.AddCommand(SolveCmd)
	var (
		ip = InputParameters.Defaults()
	)
	SolveCmd.Flags().Float64("mu", ip.Mu, "Dirichlet value of phi at z = 0")
	SolveCmd.Flags().Float64("eps", ip.Eps, "convergence tolerance on the norm of the Newton update")
	SolveCmd.Flags().Int("kmax", ip.MaxIterations, "maximum number of Newton iterations")
	SolveCmd.Flags().Float64("lz", ip.Lz, "length of the z interval")
	SolveCmd.Flags().Float64("lx", ip.Lx, "length of the x interval, centered on 0")
	SolveCmd.Flags().Int("nz", ip.Nz, "number of Chebyshev points in z")
	SolveCmd.Flags().Int("nx", ip.Nx, "number of Chebyshev points in x")
	SolveCmd.Flags().String("backend", ip.Backend, fmt.Sprintf("linear algebra backend, one of %v", linalg.Names()))
	SolveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Mu\n\t- Nz, Nx")
	SolveCmd.Flags().StringP("output", "o", "", "write the converged fields to this CSV file")
	SolveCmd.Flags().String("summary", "", "write the parameters and the iteration history to this YAML file")
	SolveCmd.Flags().BoolP("plot", "p", false, "plot the midline profiles in the terminal")
	SolveCmd.Flags().String("profile", "", "write a pprof profile to the current directory: cpu or mem")
	SolveCmd.Flags().Bool("perf", false, "count CPU instructions with the hardware performance counters")
	for _, key := range paramKeys {
		if err := viper.BindPFlag(key, SolveCmd.Flags().Lookup(key)); err != nil {
			panic(err)
		}
	}
}

func processInput(ms *ModelSoliton) (ip *InputParameters.SolitonParameters, err error) {
	ip = InputParameters.Defaults()
	if len(ms.ICFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(ms.ICFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			err = fmt.Errorf("unable to parse %s: %w", ms.ICFile, err)
			return
		}
	}
	overlayViper(ip)
	err = ip.Validate()
	return
}

// overlayViper copies every key set through a flag, the config file or the environment
func overlayViper(ip *InputParameters.SolitonParameters) {
	set := func(key string, f func()) {
		if viper.IsSet(key) {
			f()
		}
	}
	set("mu", func() { ip.Mu = viper.GetFloat64("mu") })
	set("eps", func() { ip.Eps = viper.GetFloat64("eps") })
	set("kmax", func() { ip.MaxIterations = viper.GetInt("kmax") })
	set("lz", func() { ip.Lz = viper.GetFloat64("lz") })
	set("lx", func() { ip.Lx = viper.GetFloat64("lx") })
	set("nz", func() { ip.Nz = viper.GetInt("nz") })
	set("nx", func() { ip.Nx = viper.GetInt("nx") })
	set("backend", func() { ip.Backend = viper.GetString("backend") })
}

type Summary struct {
	Parameters *InputParameters.SolitonParameters `json:"Parameters"`
	State      Soliton2D.TerminalState            `json:"State"`
	Iterations int                                `json:"Iterations"`
	History    []Soliton2D.IterationRecord        `json:"History"`
	Elapsed    string                             `json:"Elapsed"`
}

func RunSoliton(w io.Writer, ms *ModelSoliton, ip *InputParameters.SolitonParameters) (r *Soliton2D.Result, err error) {
	var (
		be    linalg.Backend
		start = time.Now()
	)
	if be, err = linalg.New(ip.Backend); err != nil {
		return
	}
	ip.Print(w)
	observer := func(rec Soliton2D.IterationRecord) {
		fmt.Fprintf(w, "Iteration[%d]: |sol| = %10.4e, |b| = %10.4e\n", rec.Iteration, rec.UpdateNorm, rec.ResidualNorm)
	}
	if r, err = Soliton2D.Solve(ip.Config(), Soliton2D.WithBackend(be), Soliton2D.WithObserver(observer)); err != nil {
		return
	}
	elapsed := time.Since(start)
	fmt.Fprintf(w, "%s after %d iterations, elapsed time = %v, %s\n",
		r.State, r.Iterations, elapsed, utils.GetMemUsage())
	if r.State != Soliton2D.Converged {
		fmt.Fprintf(w, "warning: tolerance %g not reached, increase kmax or check the grid\n", ip.Eps)
	}
	if ms.Plot {
		PlotProfiles(w, r)
	}
	if len(ms.OutputFile) != 0 {
		if err = writeFile(ms.OutputFile, func(f io.Writer) error { return WriteCSV(f, r) }); err != nil {
			return
		}
	}
	if len(ms.SummaryFile) != 0 {
		sum := &Summary{
			Parameters: ip,
			State:      r.State,
			Iterations: r.Iterations,
			History:    r.History,
			Elapsed:    elapsed.String(),
		}
		var data []byte
		if data, err = yaml.Marshal(sum); err != nil {
			return
		}
		if err = os.WriteFile(ms.SummaryFile, data, 0644); err != nil {
			return
		}
	}
	return
}

func writeFile(name string, f func(w io.Writer) error) (err error) {
	var (
		fh *os.File
	)
	if fh, err = os.Create(name); err != nil {
		return
	}
	if err = f(fh); err != nil {
		fh.Close()
		return
	}
	return fh.Close()
}

// WriteCSV writes one line per grid point: i, j, z, x, psi, phi
func WriteCSV(w io.Writer, r *Soliton2D.Result) (err error) {
	var (
		cw = csv.NewWriter(w)
		g  = r.Grid
		ff = func(v float64) string { return strconv.FormatFloat(v, 'g', 17, 64) }
	)
	if err = cw.Write([]string{"i", "j", "z", "x", "psi", "phi"}); err != nil {
		return
	}
	for p := 0; p < g.N(); p++ {
		i, j := g.IJ(p)
		err = cw.Write([]string{strconv.Itoa(i), strconv.Itoa(j),
			ff(g.Z[p]), ff(g.X[p]), ff(r.Psi[p]), ff(r.Phi[p])})
		if err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

// PlotProfiles draws psi along x at mid depth and phi along z through the center column
func PlotProfiles(w io.Writer, r *Soliton2D.Result) {
	var (
		g    = r.Grid
		psiX = g.Reshape(r.Psi)[g.Nz/2]
		phiZ = g.Column(r.Phi, g.Nx/2)
	)
	fmt.Fprintln(w, asciigraph.Plot(psiX, asciigraph.Height(12), asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("psi(x) at z = %.3f", g.Zc[g.Nz/2]))))
	fmt.Fprintln(w, asciigraph.Plot(phiZ, asciigraph.Height(12), asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("phi(z) at x = %.3f, from z = 1 to z = 0", g.Xc[g.Nx/2]))))
}
