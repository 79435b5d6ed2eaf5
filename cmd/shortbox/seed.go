package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/meur/shortbox/internal/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load condition grades into the database",
		Long: `Seed writes the condition grade scale, best grade first.
Without --file the built-in scale (MT through PR) is used.
Existing grades with the same id are updated in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			grades := models.DefaultConditionScale()
			if file != "" {
				if grades, err = readGrades(file); err != nil {
					return err
				}
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.UpsertConditions(cmd.Context(), grades); err != nil {
				return fmt.Errorf("seed conditions: %w", err)
			}

			logger.Info("seeded condition grades", zap.Int("count", len(grades)))
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d condition grades\n", len(grades))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON array of {id, code, description}")
	return cmd
}

func readGrades(path string) ([]models.ConditionGrade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var grades []models.ConditionGrade
	if err := json.Unmarshal(data, &grades); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(grades) == 0 {
		return nil, fmt.Errorf("%s has no condition grades", path)
	}

	seen := make(map[int64]bool, len(grades))
	for i, g := range grades {
		if g.ID <= 0 {
			return nil, fmt.Errorf("grade %d: id must be positive", i)
		}
		if strings.TrimSpace(g.Code) == "" {
			return nil, fmt.Errorf("grade %d: code is required", g.ID)
		}
		if seen[g.ID] {
			return nil, fmt.Errorf("grade %d: duplicate id", g.ID)
		}
		seen[g.ID] = true
	}
	return grades, nil
}
