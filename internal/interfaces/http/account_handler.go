package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cuentas-pro/internal/application/accounts"
	"github.com/tu-usuario/cuentas-pro/internal/application/dto"
)

// AccountHandler maneja las peticiones HTTP de cuentas corrientes (protegido).
type AccountHandler struct {
	uc *accounts.UseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *accounts.UseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// List lista cuentas con filtros.
// GET /api/accounts
func (h *AccountHandler) List(c *fiber.Ctx) error {
	var in dto.AccountFiltersRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	out, err := h.uc.ListAccounts(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Stats estadísticas globales de cuentas corrientes.
// GET /api/accounts/stats
func (h *AccountHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Debtors cuentas con deuda pendiente.
// GET /api/accounts/debtors
func (h *AccountHandler) Debtors(c *fiber.Ctx) error {
	out, err := h.uc.Debtors(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// OverdueAlerts deudores morosos.
// GET /api/accounts/overdue-alerts
func (h *AccountHandler) OverdueAlerts(c *fiber.Ctx) error {
	out, err := h.uc.OverdueAlerts(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// RecomputeOverdue dispara a mano el recálculo de mora (admin).
// POST /api/accounts/recompute-overdue
func (h *AccountHandler) RecomputeOverdue(c *fiber.Ctx) error {
	out, err := h.uc.RecomputeOverdue(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Get devuelve (o crea) la cuenta corriente del cliente.
// GET /api/accounts/:customerId
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	customerID := c.Params("customerId")
	if customerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customerId requerido"})
	}
	out, err := h.uc.GetAccount(c.Context(), customerID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza límite de crédito y/o estado de la cuenta (admin).
// PUT /api/accounts/:customerId
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	customerID := c.Params("customerId")
	var in dto.UpdateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateAccount(c.Context(), customerID, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Suspend suspende la cuenta (admin).
// POST /api/accounts/:customerId/suspend
func (h *AccountHandler) Suspend(c *fiber.Ctx) error {
	out, err := h.uc.SuspendAccount(c.Context(), c.Params("customerId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Activate reactiva la cuenta (admin).
// POST /api/accounts/:customerId/activate
func (h *AccountHandler) Activate(c *fiber.Ctx) error {
	out, err := h.uc.ActivateAccount(c.Context(), c.Params("customerId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Statement estado de cuenta con movimientos paginados.
// GET /api/accounts/:customerId/statement
func (h *AccountHandler) Statement(c *fiber.Ctx) error {
	customerID := c.Params("customerId")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	out, err := h.uc.GetStatement(c.Context(), customerID, page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// StatementPDF estado de cuenta en PDF.
// GET /api/accounts/:customerId/statement/pdf
func (h *AccountHandler) StatementPDF(c *fiber.Ctx) error {
	customerID := c.Params("customerId")
	pdfBytes, err := h.uc.GetStatementPDF(c.Context(), customerID)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="estado-de-cuenta.pdf"`)
	return c.Send(pdfBytes)
}

// PendingTransactions ventas e ingresos a cuenta sin saldar.
// GET /api/accounts/:customerId/pending-transactions
func (h *AccountHandler) PendingTransactions(c *fiber.Ctx) error {
	out, err := h.uc.GetPendingTransactions(c.Context(), c.Params("customerId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// CreateCharge agrega un cargo a la cuenta.
// POST /api/accounts/:customerId/charges
func (h *AccountHandler) CreateCharge(c *fiber.Ctx) error {
	customerID := c.Params("customerId")
	var in dto.CreateChargeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateCharge(c.Context(), customerID, in, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreatePayment registra un pago contra la deuda.
// POST /api/accounts/:customerId/payments
func (h *AccountHandler) CreatePayment(c *fiber.Ctx) error {
	customerID := c.Params("customerId")
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreatePayment(c.Context(), customerID, in, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ApplySurcharge aplica un recargo por mora.
// POST /api/accounts/:customerId/surcharges
func (h *AccountHandler) ApplySurcharge(c *fiber.Ctx) error {
	customerID := c.Params("customerId")
	var in dto.SurchargeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ApplySurcharge(c.Context(), customerID, in, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateAdjustment registra un ajuste manual (solo admin).
// POST /api/accounts/:customerId/adjustments
func (h *AccountHandler) CreateAdjustment(c *fiber.Ctx) error {
	customerID := c.Params("customerId")
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateAdjustment(c.Context(), customerID, in, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SyncCharges crea los cargos faltantes de las ventas a cuenta pendientes.
// POST /api/accounts/:customerId/sync-charges
func (h *AccountHandler) SyncCharges(c *fiber.Ctx) error {
	out, err := h.uc.SyncMissingCharges(c.Context(), c.Params("customerId"), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
