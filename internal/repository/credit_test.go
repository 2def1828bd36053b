package repository_test

import (
	"context"
	"testing"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredit_AddCredits(t *testing.T) {
	t.Run("sms counter increments store-side", func(t *testing.T) {
		db, rec := newDryRunDB(t)
		repo := repository.NewCreditRepository(db)

		err := repo.AddCredits(context.Background(), 9, model.CreditTypeSMS, 254)

		require.NoError(t, err)
		require.Len(t, rec.statements, 1)

		stmt := rec.statements[0]
		assert.Contains(t, stmt, "INSERT INTO `isp_credits`")
		assert.Contains(t, stmt, "ON DUPLICATE KEY UPDATE")
		assert.Contains(t, stmt, "sms_credits + VALUES(sms_credits)")
	})

	t.Run("whatsapp counter increments store-side", func(t *testing.T) {
		db, rec := newDryRunDB(t)
		repo := repository.NewCreditRepository(db)

		err := repo.AddCredits(context.Background(), 9, model.CreditTypeWhatsApp, 5)

		require.NoError(t, err)
		require.Len(t, rec.statements, 1)
		assert.Contains(t, rec.statements[0], "whatsapp_credits + VALUES(whatsapp_credits)")
	})

	t.Run("unknown credit type is rejected before any sql", func(t *testing.T) {
		db, rec := newDryRunDB(t)
		repo := repository.NewCreditRepository(db)

		err := repo.AddCredits(context.Background(), 9, "voice", 10)

		assert.Error(t, err)
		assert.Empty(t, rec.statements)
	})
}
