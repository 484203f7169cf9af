package InputParameters

import (
	"errors"
	"fmt"
	"io"

	"github.com/ghodss/yaml"

	"github.com/notargets/gosoliton/linalg"
	"github.com/notargets/gosoliton/model_problems/Soliton2D"
)

// Parameters obtained from the YAML input file
type SolitonParameters struct {
	Title         string  `json:"Title"`
	Mu            float64 `json:"Mu"`
	Eps           float64 `json:"Eps"`
	MaxIterations int     `json:"MaxIterations"`
	Lz            float64 `json:"Lz"`
	Lx            float64 `json:"Lx"`
	Nz            int     `json:"Nz"`
	Nx            int     `json:"Nx"`
	Backend       string  `json:"Backend"` // dense or parallel
}

func Defaults() (ip *SolitonParameters) {
	cfg := Soliton2D.DefaultConfig()
	ip = &SolitonParameters{
		Title:         "Soliton",
		Backend:       "dense",
		Mu:            cfg.Mu,
		Eps:           cfg.Eps,
		MaxIterations: cfg.KMax,
		Lz:            cfg.Lz,
		Lx:            cfg.Lx,
		Nz:            cfg.Nz,
		Nx:            cfg.Nx,
	}
	return
}

// Parse overlays the YAML document onto ip, keys not present keep their value
func (ip *SolitonParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *SolitonParameters) Marshal() ([]byte, error) {
	return yaml.Marshal(ip)
}

func (ip *SolitonParameters) Config() Soliton2D.Config {
	return Soliton2D.Config{
		Mu:   ip.Mu,
		Eps:  ip.Eps,
		KMax: ip.MaxIterations,
		Lz:   ip.Lz,
		Lx:   ip.Lx,
		Nz:   ip.Nz,
		Nx:   ip.Nx,
	}
}

func (ip *SolitonParameters) Validate() error {
	var (
		err = ip.Config().Validate()
	)
	if _, berr := linalg.New(ip.Backend); berr != nil {
		err = errors.Join(err, berr)
	}
	return err
}

func (ip *SolitonParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "%8.5f\t\t= Mu\n", ip.Mu)
	fmt.Fprintf(w, "%8.2e\t\t= Eps\n", ip.Eps)
	fmt.Fprintf(w, "[%d]\t\t\t\t= MaxIterations\n", ip.MaxIterations)
	fmt.Fprintf(w, "%8.5f\t\t= Lz\n", ip.Lz)
	fmt.Fprintf(w, "%8.5f\t\t= Lx\n", ip.Lx)
	fmt.Fprintf(w, "[%d, %d]\t\t\t= Nz, Nx\n", ip.Nz, ip.Nx)
	fmt.Fprintf(w, "[%s]\t\t\t= Backend\n", ip.Backend)
}
