package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"menu-scorer/internal/core/enrich"
	"menu-scorer/internal/core/reference"
	"menu-scorer/internal/core/scoring"
	"menu-scorer/internal/pkg/common"

	"github.com/spf13/cobra"
)

// options 兩個子命令共用的旗標
type options struct {
	menuPath   string
	tablesPath string
	topN       int
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "menuscore",
		Short:         "Score a menu for sustainability, pleasure and fit",
		Long:          "Reads a menu as JSON (a list of dishes or an object with menu_data) and prints the scored result as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return common.InitLogger(opts.logLevel, "")
		},
	}

	root.PersistentFlags().StringVarP(&opts.menuPath, "menu", "m", "-", "menu JSON file, - for stdin")
	root.PersistentFlags().StringVar(&opts.tablesPath, "tables", "", "YAML file overriding the built-in reference tables")
	root.PersistentFlags().IntVarP(&opts.topN, "top-n", "n", 10, "number of dishes to print, 0 for all")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level (debug|info|warn|error)")

	root.AddCommand(newConsumerCmd(opts), newRestaurantCmd(opts))
	return root
}

func newConsumerCmd(opts *options) *cobra.Command {
	var (
		restriction string
		goal        string
		allergens   string
		lenient     bool
	)

	cmd := &cobra.Command{
		Use:   "consumer",
		Short: "Score dishes for a diner profile, filtering incompatible ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			scorer, menu, err := prepare(cmd, opts)
			if err != nil {
				return err
			}
			profile := common.UserProfile{
				DietaryRestriction: restriction,
				Goal:               goal,
				Allergens:          common.SplitCSV(allergens),
				StrictFilter:       !lenient,
			}
			res, err := scorer.ScoreForConsumer(cmd.Context(), menu, profile, opts.topN)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), scoring.ModeConsumer, res)
		},
	}

	cmd.Flags().StringVar(&restriction, "diet", "", "dietary restriction (vegan|vegetarian|gluten-free|halal)")
	cmd.Flags().StringVar(&goal, "goal", "", "goal (weight_loss|muscle_gain|athlete)")
	cmd.Flags().StringVar(&allergens, "allergens", "", "comma separated allergens to exclude")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "penalize incompatible dishes instead of removing them")
	return cmd
}

func newRestaurantCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "restaurant",
		Short: "Score every dish and suggest lower-carbon swaps",
		RunE: func(cmd *cobra.Command, args []string) error {
			scorer, menu, err := prepare(cmd, opts)
			if err != nil {
				return err
			}
			res, err := scorer.ScoreForRestaurant(cmd.Context(), menu, opts.topN)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), scoring.ModeRestaurant, res)
		},
	}
}

// prepare 載入資料表與菜單
func prepare(cmd *cobra.Command, opts *options) (*scoring.Scorer, []common.Dish, error) {
	tables := reference.Default()
	if opts.tablesPath != "" {
		t, err := reference.LoadFile(opts.tablesPath)
		if err != nil {
			return nil, nil, common.ErrTablesLoad.Wrap(err)
		}
		tables = t
	}

	var r io.Reader = cmd.InOrStdin()
	if opts.menuPath != "-" {
		f, err := os.Open(opts.menuPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open menu: %w", err)
		}
		defer f.Close()
		r = f
	}
	// 只接受單一 JSON 值，尾端多餘資料視為錯誤
	var raw json.RawMessage
	if err := common.DecodeJSON(r, &raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, common.NewValidationError("menu is empty")
		}
		return nil, nil, fmt.Errorf("read menu: %w", err)
	}
	menu, err := parseMenu(raw)
	if err != nil {
		return nil, nil, err
	}

	return scoring.NewScorer(enrich.New(tables)), menu, nil
}

// parseMenu 接受菜品陣列或 {"menu_data": [...]}
func parseMenu(data []byte) ([]common.Dish, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, common.NewValidationError("menu is empty")
	}

	if data[0] == '[' {
		var menu []common.Dish
		if err := common.ParseJSONBytes(data, &menu); err != nil {
			return nil, fmt.Errorf("parse menu: %w", err)
		}
		return menu, nil
	}

	var envelope struct {
		MenuData []common.Dish `json:"menu_data"`
	}
	if err := common.ParseJSONBytes(data, &envelope); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	if envelope.MenuData == nil {
		return nil, common.NewValidationError("menu_data is required")
	}
	return envelope.MenuData, nil
}

func printJSON(w io.Writer, mode string, res *common.MenuAnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(struct {
		Success bool                       `json:"success"`
		Mode    string                     `json:"mode"`
		Results *common.MenuAnalysisResult `json:"results"`
	}{true, strings.ToLower(mode), res})
}
