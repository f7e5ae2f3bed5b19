package database

import (
	"fmt"

	"orient-classics-backend/models"

	"gorm.io/gorm"
)

// Migrate applies idempotent schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Money column types (NUMERIC(15,2), percents NUMERIC(7,4))
// - Helpful indexes
// - Foreign keys: contracts.work_id → works.id, contracts.translator_id → translators.id
// - Basic CHECK constraints on the financial columns
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.Work{},
			&models.Translator{},
			&models.ContractTemplate{},
			&models.Contract{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money column types (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE contracts ALTER COLUMN translation_unit_price    TYPE numeric(15,2)`,
			`ALTER TABLE contracts ALTER COLUMN translation_cost          TYPE numeric(15,2)`,
			`ALTER TABLE contracts ALTER COLUMN overview_writing_cost     TYPE numeric(15,2)`,
			`ALTER TABLE contracts ALTER COLUMN total_amount              TYPE numeric(15,2)`,
			`ALTER TABLE contracts ALTER COLUMN management_fee            TYPE numeric(15,2)`,
			`ALTER TABLE contracts ALTER COLUMN tax_amount                TYPE numeric(15,2)`,
			`ALTER TABLE contracts ALTER COLUMN advance_payment_1         TYPE numeric(15,2)`,
			`ALTER TABLE contracts ALTER COLUMN advance_payment_2         TYPE numeric(15,2)`,
			`ALTER TABLE contracts ALTER COLUMN final_payment             TYPE numeric(15,2)`,
			`ALTER TABLE contracts ALTER COLUMN advance_payment_1_percent TYPE numeric(7,4)`,
			`ALTER TABLE contracts ALTER COLUMN advance_payment_2_percent TYPE numeric(7,4)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_contracts_contract_number ON contracts (contract_number)`,
			`CREATE INDEX IF NOT EXISTS idx_contracts_work ON contracts (work_id)`,
			`CREATE INDEX IF NOT EXISTS idx_contracts_translator ON contracts (translator_id)`,
			`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status)`,
			`CREATE INDEX IF NOT EXISTS idx_contract_templates_type ON contract_templates (type)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Foreign keys (idempotent) ---
		fks := []string{
			`DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = 'contracts'::regclass
		  AND conname  = 'fk_contracts_work'
	) THEN
		ALTER TABLE contracts
		ADD CONSTRAINT fk_contracts_work
		FOREIGN KEY (work_id)
		REFERENCES works(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`,
			`DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = 'contracts'::regclass
		  AND conname  = 'fk_contracts_translator'
	) THEN
		ALTER TABLE contracts
		ADD CONSTRAINT fk_contracts_translator
		FOREIGN KEY (translator_id)
		REFERENCES translators(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`,
		}
		for _, stmt := range fks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("foreign key migration failed: %w", err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'contracts'::regclass
					  AND conname  = 'chk_contracts_total_amount_nonneg'
				) THEN
					ALTER TABLE contracts
					ADD CONSTRAINT chk_contracts_total_amount_nonneg
					CHECK (total_amount >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'contracts'::regclass
					  AND conname  = 'chk_contracts_advance_percents'
				) THEN
					ALTER TABLE contracts
					ADD CONSTRAINT chk_contracts_advance_percents
					CHECK (advance_payment_1_percent >= 0 AND advance_payment_1_percent <= 100
					   AND advance_payment_2_percent >= 0 AND advance_payment_2_percent <= 100);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'works'::regclass
					  AND conname  = 'chk_works_page_count_nonneg'
				) THEN
					ALTER TABLE works
					ADD CONSTRAINT chk_works_page_count_nonneg
					CHECK (page_count >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
