package v1

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/api/contract"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/api/validator"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/constants"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/repository"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// processTimeout bounds one callback's database work end to end. The upstream
// gateway expects a fast acknowledgement either way.
const processTimeout = 30 * time.Second

type Handler struct {
	logger     *zap.Logger
	db         *gorm.DB
	paymentLog service.PaymentLogService
	router     service.PaymentRouterService
	validator  validator.IXValidator
}

func NewHandler(logger *zap.Logger, db *gorm.DB, paymentLog service.PaymentLogService,
	router service.PaymentRouterService, validator validator.IXValidator) *Handler {
	return &Handler{
		logger:     logger,
		db:         db,
		paymentLog: paymentLog,
		router:     router,
		validator:  validator,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) CallbackProcess(c *fiber.Ctx) error {
	var request CallbackRequest

	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse callback body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return c.Status(fiber.StatusBadRequest).JSON(contract.ErrorResponse{
			Success: false,
			Error:   constants.ErrMsgMalformedBody,
		})
	}

	if errs := h.validator.Validate(&request); len(errs) > 0 {
		h.logger.Warn("Callback missing transaction id",
			zap.String("billRef", request.BillRefNumber))
		return c.Status(fiber.StatusBadRequest).JSON(contract.ErrorResponse{
			Success: false,
			Error:   constants.ErrMsgMissingTransID,
		})
	}

	cmd := service.PaymentCommand{
		TransactionID:     request.TransID,
		TransactionType:   request.TransactionType,
		TransactionTime:   request.TransTime,
		Amount:            service.ParseAmount(request.TransAmount),
		BusinessShortCode: request.BusinessShortCode,
		BillRef:           request.BillRefNumber,
		InvoiceNumber:     request.InvoiceNumber,
		OrgAccountBalance: service.ParseAmount(request.OrgAccountBalance),
		ThirdPartyTransID: request.ThirdPartyTransID,
		PayerMSISDN:       request.MSISDN,
		PayerFirstName:    request.FirstName,
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), processTimeout)
	defer cancel()

	// Raw audit row first. A replayed TransID already has its row and its
	// ledger effects, so it is acknowledged without re-routing; any other
	// logging failure must not block routing.
	if err := h.paymentLog.LogRaw(ctx, cmd); err != nil {
		if errors.Is(err, repository.ErrDuplicatePayment) {
			h.logger.Warn("Duplicate callback acknowledged without reprocessing",
				zap.String("transactionID", cmd.TransactionID))
			return c.JSON(contract.CallbackResponse{
				Success:       true,
				Processed:     false,
				TransactionID: cmd.TransactionID,
				ProcessingResult: service.ProcessResult{
					Success: false,
					Reason:  constants.ReasonDuplicateTransaction,
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
		}

		h.logger.Error("Failed to persist raw payment, continuing",
			zap.String("transactionID", cmd.TransactionID),
			zap.Error(err))
	}

	result := h.router.Process(ctx, cmd)

	h.logger.Info("Callback processed",
		zap.String("transactionID", cmd.TransactionID),
		zap.Bool("routed", result.Success))

	return c.JSON(contract.CallbackResponse{
		Success:          true,
		Processed:        true,
		TransactionID:    cmd.TransactionID,
		ProcessingResult: result,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) Health(c *fiber.Ctx) error {
	var one int
	if err := h.db.WithContext(c.UserContext()).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(contract.HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
	}

	return c.JSON(contract.HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Service:   "Payment Processor",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
