package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"svw.info/parsudoku/internal/parse"
	"svw.info/parsudoku/internal/ports"
	"svw.info/parsudoku/internal/render"
	"svw.info/parsudoku/internal/solver"
	"svw.info/parsudoku/internal/usecase"
	"svw.info/parsudoku/internal/validator"
)

var (
	solveWorkers int
	solveKind    string
	solveInput   string
)

var solveCmd = &cobra.Command{
	Use:   "solve [puzzle-line]",
	Short: "Solve a puzzle",
	Long: `Solve a Sudoku puzzle given as an 81-character row-major line, either as
an argument, from --input, or from the first line of stdin.

The first solution found is printed; for puzzles with several solutions
the parallel workers race and the reported one may vary across runs.
An unsolvable puzzle exits non-zero without printing a grid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&solveWorkers, "workers", 0, "maximum concurrent solver workers (default: config, then CPU count)")
	solveCmd.Flags().StringVar(&solveKind, "solver", "", "solver to use: parallel|dlx (default: config)")
	solveCmd.Flags().StringVarP(&solveInput, "input", "i", "", "file containing the puzzle line (default: stdin)")
	rootCmd.AddCommand(solveCmd)
}

// newSolver builds the requested solver. workers only applies to the
// parallel one.
func newSolver(kind string, workers int) (ports.Solver, error) {
	if workers < 1 {
		return nil, fmt.Errorf("workers must be positive, got %d", workers)
	}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "parallel":
		return solver.NewParallelSolver(workers)
	case "dlx":
		return solver.NewDLXSolver(), nil
	default:
		return nil, fmt.Errorf("unknown solver %q (want parallel or dlx)", kind)
	}
}

func resolveWorkers(cmd *cobra.Command) int {
	if cmd.Flags().Changed("workers") {
		return solveWorkers
	}
	return cfg.Workers
}

func resolveKind(cmd *cobra.Command) string {
	if cmd.Flags().Changed("solver") {
		return solveKind
	}
	return cfg.Solver
}

func readPuzzleLine(args []string, inputPath string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	in := os.Stdin
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return "", err
		}
		defer f.Close()
		in = f
	}
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no puzzle line on input")
	}
	return sc.Text(), nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	line, err := readPuzzleLine(args, solveInput)
	if err != nil {
		return err
	}
	board, err := parse.Line(line)
	if err != nil {
		return err
	}

	s, err := newSolver(resolveKind(cmd), resolveWorkers(cmd))
	if err != nil {
		return err
	}
	svc := usecase.NewService(s, nil, validator.New())

	out, st, err := svc.Solve(ctx, board)
	if errors.Is(err, solver.ErrUnsolvable) {
		logger.Warn("search space exhausted",
			"nodes", st.Nodes,
			"dur", st.Duration.Round(time.Microsecond),
		)
		return errors.New("no solution")
	}
	if err != nil {
		return err
	}

	logger.Debug("solved",
		"nodes", st.Nodes,
		"workers", st.Workers,
		"dur", st.Duration.Round(time.Microsecond),
	)
	return render.New(cmd.OutOrStdout()).Board(out)
}
