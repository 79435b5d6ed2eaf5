package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/meur/shortbox/internal/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// importRecord is one item in an import file
type importRecord struct {
	Series        string          `json:"series"`
	Issue         string          `json:"issue"`
	Condition     string          `json:"condition"` // grade code, e.g. "VF/NM"
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	Notes         string          `json:"notes"`
	Tags          string          `json:"tags"`
}

func newImportCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Bulk import items from a JSON file",
		Long: `Import reads a JSON array of items and inserts them in one transaction.
Conditions are given by grade code and must already be seeded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if userID == "" {
				userID = cfg.UserID
			}
			if _, err := uuid.Parse(userID); err != nil {
				return fmt.Errorf("import needs a user id (--user or SHORTBOX_USER_ID): %w", err)
			}

			records, err := readImport(args[0])
			if err != nil {
				return err
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			grades, err := store.ListConditions(cmd.Context())
			if err != nil {
				return fmt.Errorf("list conditions: %w", err)
			}
			items, err := toCreates(records, grades)
			if err != nil {
				return err
			}

			if err := store.BulkCreateItems(cmd.Context(), userID, items); err != nil {
				return fmt.Errorf("import: %w", err)
			}

			logger.Info("imported items", zap.Int("count", len(items)), zap.String("user_id", userID))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items\n", len(items))
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "owner user id, defaults to SHORTBOX_USER_ID")
	return cmd
}

func readImport(path string) ([]importRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []importRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// toCreates validates records and resolves grade codes to ids
func toCreates(records []importRecord, grades []models.ConditionGrade) ([]models.ItemCreate, error) {
	byCode := make(map[string]int64, len(grades))
	for _, g := range grades {
		if _, ok := byCode[g.Code]; !ok {
			byCode[g.Code] = g.ID
		}
	}

	items := make([]models.ItemCreate, 0, len(records))
	for i, rec := range records {
		form := models.ItemForm{
			Series: rec.Series,
			Issue:  rec.Issue,
			Notes:  rec.Notes,
			Tags:   rec.Tags,
		}
		form.Normalize()
		if err := form.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		code := strings.TrimSpace(rec.Condition)
		id, ok := byCode[code]
		if !ok {
			return nil, fmt.Errorf("record %d: unknown condition %q", i, rec.Condition)
		}

		var tags *string
		if t := strings.TrimSpace(rec.Tags); t != "" {
			tags = &t
		}

		items = append(items, models.ItemCreate{
			Series:        form.Series,
			Issue:         form.Issue,
			ConditionID:   id,
			PurchasePrice: rec.PurchasePrice.Round(2),
			CurrentValue:  rec.CurrentValue.Round(2),
			Notes:         rec.Notes,
			Tags:          tags,
		})
	}
	return items, nil
}
