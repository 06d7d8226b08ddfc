package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"svw.info/parsudoku/internal/domain"
	"svw.info/parsudoku/internal/parse"
	"svw.info/parsudoku/internal/render"
	"svw.info/parsudoku/internal/usecase"
	"svw.info/parsudoku/internal/validator"
)

var (
	checkInput string
	checkJSON  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [puzzle-line]",
	Short: "Check a board for row/column/box conflicts",
	Long: `Check a board (complete or partial) for duplicate values in any row,
column, or 3x3 box. Exits non-zero when conflicts are found.

Use --json for machine-readable output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkInput, "input", "i", "", "file containing the puzzle line (default: stdin)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(checkCmd)
}

type checkResult struct {
	OK        bool               `json:"ok"`
	Conflicts []domain.CellCoord `json:"conflicts,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	line, err := readPuzzleLine(args, checkInput)
	if err != nil {
		return err
	}
	board, err := parse.Line(line)
	if err != nil {
		return err
	}

	svc := usecase.NewService(nil, nil, validator.New())
	ok, conflicts, err := svc.Validate(ctx, board)
	if err != nil {
		return err
	}

	if checkJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(checkResult{OK: ok, Conflicts: conflicts}); err != nil {
			return err
		}
	} else if ok {
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
	} else {
		if err := render.New(cmd.OutOrStdout()).Conflicts(conflicts); err != nil {
			return err
		}
	}
	if !ok {
		return errors.New("board has conflicts")
	}
	return nil
}
