package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/klfit-ml/klfit/autodiff"
	"github.com/klfit-ml/klfit/backend/cpu"
	"github.com/klfit-ml/klfit/contour"
	"github.com/klfit-ml/klfit/distribution"
	"github.com/klfit-ml/klfit/fit"
	"github.com/klfit-ml/klfit/nn"
)

// Fit command flags.
var (
	fitDim         int
	fitSteps       int
	fitLR          float64
	fitSeed        int64
	fitReportEvery int
	fitPlot        bool
	fitConfigPath  string
)

// fitFileConfig is the YAML configuration file schema. Flags given on the
// command line take precedence over file values.
type fitFileConfig struct {
	Dim         int           `yaml:"dim"`
	Steps       int           `yaml:"steps"`
	LR          float64       `yaml:"lr"`
	Seed        int64         `yaml:"seed"`
	ReportEvery int           `yaml:"report_every"`
	Plot        bool          `yaml:"plot"`
	Target      *targetConfig `yaml:"target"`
}

// targetConfig pins the target distribution instead of drawing it from the
// seed. Covariance rows must form a symmetric positive definite matrix.
type targetConfig struct {
	Mean       []float64   `yaml:"mean"`
	Covariance [][]float64 `yaml:"covariance"`
}

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a trainable Gaussian to a target distribution",
	Long: `Fit a trainable multivariate Gaussian with a lower-triangular scale
factor to a fixed target distribution by minimizing KL divergence with Adam.

The target is drawn at random from the seed unless a configuration file
pins its mean and covariance.

Examples:
  klfit fit                            # 2D fit with defaults
  klfit fit --dim 3 --steps 2000       # Higher-dimensional, longer run
  klfit fit --plot                     # Render contours while fitting
  klfit fit --config fit.yaml          # Load settings from a YAML file`,
	RunE: runFit,
}

func init() {
	rootCmd.AddCommand(fitCmd)

	fitCmd.Flags().IntVar(&fitDim, "dim", 2, "Dimension of the Gaussians")
	fitCmd.Flags().IntVar(&fitSteps, "steps", 1000, "Number of gradient steps")
	fitCmd.Flags().Float64Var(&fitLR, "lr", 0.01, "Adam learning rate")
	fitCmd.Flags().Int64Var(&fitSeed, "seed", 42, "Random seed for target and initialization")
	fitCmd.Flags().IntVar(&fitReportEvery, "report-every", 10, "Reporting cadence in steps")
	fitCmd.Flags().BoolVar(&fitPlot, "plot", false, "Render density contours while fitting (2D only)")
	fitCmd.Flags().StringVar(&fitConfigPath, "config", "", "Path to a YAML configuration file")
}

func runFit(cmd *cobra.Command, args []string) error {
	var fileCfg *fitFileConfig
	if fitConfigPath != "" {
		cfg, err := loadFitConfig(fitConfigPath)
		if err != nil {
			return err
		}
		fileCfg = cfg
		applyFileConfig(cmd, fileCfg)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(fitSeed)) //nolint:gosec // reproducibility, not crypto

	target, err := buildTarget(fileCfg, rng)
	if err != nil {
		return err
	}

	model, err := nn.NewConstrainedNormal(target.Dim(), rng, backend)
	if err != nil {
		return err
	}

	cfg := fit.Config{
		Steps:       fitSteps,
		LR:          fitLR,
		ReportEvery: fitReportEvery,
		Logger:      logger,
	}
	if fitPlot {
		if target.Dim() != 2 {
			return fmt.Errorf("--plot requires dim 2, got %d", target.Dim())
		}
		renderer := contour.NewRenderer(contour.DefaultGrid())
		cfg.Observer = func(step int, kl float64, approx *distribution.MultivariateNormal) {
			if approx == nil {
				return
			}
			if err := renderer.Render(os.Stdout, step, kl, target, approx); err != nil {
				logger.Warn("contour rendering failed", "error", err)
			}
		}
	}

	fitter := fit.New(backend, cfg)
	result, err := fitter.Fit(model, target)
	if err != nil {
		return err
	}
	if result.Diverged {
		return fmt.Errorf("fit diverged after %d steps", result.Steps)
	}

	fmt.Printf("fit complete: %d steps, final KL(q‖p) = %.6g\n", result.Steps, result.FinalKL)
	return nil
}

// loadFitConfig reads and parses the YAML configuration file.
func loadFitConfig(path string) (*fitFileConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied config path
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg fitFileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyFileConfig copies file values into the flag variables for every flag
// the user did not set explicitly.
func applyFileConfig(cmd *cobra.Command, cfg *fitFileConfig) {
	flags := cmd.Flags()
	if cfg.Dim != 0 && !flags.Changed("dim") {
		fitDim = cfg.Dim
	}
	if cfg.Steps != 0 && !flags.Changed("steps") {
		fitSteps = cfg.Steps
	}
	if cfg.LR != 0 && !flags.Changed("lr") {
		fitLR = cfg.LR
	}
	if cfg.Seed != 0 && !flags.Changed("seed") {
		fitSeed = cfg.Seed
	}
	if cfg.ReportEvery != 0 && !flags.Changed("report-every") {
		fitReportEvery = cfg.ReportEvery
	}
	if cfg.Plot && !flags.Changed("plot") {
		fitPlot = true
	}
}

// buildTarget constructs the target distribution, either pinned by the
// configuration file or drawn at random from the seed.
func buildTarget(cfg *fitFileConfig, rng *rand.Rand) (*distribution.MultivariateNormal, error) {
	if cfg == nil || cfg.Target == nil {
		return distribution.NewRandom(fitDim, rng)
	}

	t := cfg.Target
	dim := len(t.Mean)
	if dim == 0 {
		return nil, fmt.Errorf("target.mean must be non-empty")
	}
	if len(t.Covariance) != dim {
		return nil, fmt.Errorf("target.covariance must be %d×%d, got %d rows", dim, dim, len(t.Covariance))
	}
	for i, row := range t.Covariance {
		if len(row) != dim {
			return nil, fmt.Errorf("target.covariance row %d has %d entries, want %d", i, len(row), dim)
		}
	}
	sigma := mat.NewSymDense(dim, nil)
	for i, row := range t.Covariance {
		for j := i; j < dim; j++ {
			if t.Covariance[j][i] != row[j] {
				return nil, fmt.Errorf("target.covariance is not symmetric at (%d,%d)", i, j)
			}
			sigma.SetSym(i, j, row[j])
		}
	}
	return distribution.NewFromCovariance(t.Mean, sigma)
}
