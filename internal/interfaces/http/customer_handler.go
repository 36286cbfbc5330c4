package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cs-portfolio/internal/application/customers"
	"github.com/jhoicas/cs-portfolio/internal/application/dto"
	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/excel"
)

// CustomerHandler maneja la lista de clientes: CRUD, búsqueda, edición por sesión y exportación.
type CustomerHandler struct {
	manager  *customers.Manager
	sessions *customers.EditSessions
	export   *customers.ExportUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(manager *customers.Manager, sessions *customers.EditSessions, export *customers.ExportUseCase) *CustomerHandler {
	return &CustomerHandler{manager: manager, sessions: sessions, export: export}
}

// List godoc
// @Summary      Listar clientes
// @Description  Búsqueda por subcadena (nombre, CVR, contactos) y orden por CustomerName, ForecastYearlyRevenue o ActualRevenueToDate.
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        q     query  string  false  "texto a buscar"
// @Param        sort  query  string  false  "CustomerName | ForecastYearlyRevenue | ActualRevenueToDate"
// @Success      200   {object}  dto.CustomerListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	q := c.Query("q")
	view, err := h.manager.List(c.UserContext(), q, c.Query("sort"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customers.ToListResponse(view, q, entity.Today()))
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "CustomerId"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.manager.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customers.ToResponse(customer, entity.Today()))
}

// Create godoc
// @Summary      Crear cliente
// @Description  Fechas ausentes se completan con hoy. El ID se genera en el servidor.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CustomerInput  true  "cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}
	customer, err := h.manager.Add(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customers.ToResponse(customer, entity.Today()))
}

// Update godoc
// @Summary      Editar cliente
// @Description  Reemplaza todos los campos excepto el ID.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "CustomerId"
// @Param        body  body  dto.CustomerInput  true  "cliente"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}
	customer, err := h.manager.Edit(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customers.ToResponse(customer, entity.Today()))
}

// Delete godoc
// @Summary      Eliminar cliente
// @Description  Un ID inexistente no es error.
// @Tags         customers
// @Security     BearerAuth
// @Param        id   path  string  true  "CustomerId"
// @Success      204
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.manager.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reload godoc
// @Summary      Recargar desde la hoja
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MessageResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/customers/reload [post]
func (h *CustomerHandler) Reload(c *fiber.Ctx) error {
	if err := h.manager.Reload(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "clientes recargados"})
}

// ── Edición por sesión ────────────────────────────────────────────────────────

// CurrentEdit godoc
// @Summary      Estado de edición de la sesión
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.EditingResponse
// @Router       /api/customers/editing [get]
func (h *CustomerHandler) CurrentEdit(c *fiber.Ctx) error {
	customer, err := h.sessions.Current(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(editingResponse(customer))
}

// BeginEdit godoc
// @Summary      Seleccionar cliente para editar
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "CustomerId"
// @Success      200  {object}  dto.EditingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/editing/{id} [post]
func (h *CustomerHandler) BeginEdit(c *fiber.Ctx) error {
	customer, err := h.sessions.Begin(c.UserContext(), GetSessionID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(editingResponse(customer))
}

// SaveEdit godoc
// @Summary      Guardar el cliente en edición
// @Description  Si falla, la sesión sigue en edición.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CustomerInput  true  "cliente"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers/editing [post]
func (h *CustomerHandler) SaveEdit(c *fiber.Ctx) error {
	var in dto.CustomerInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}
	customer, err := h.sessions.Save(c.UserContext(), GetSessionID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customers.ToResponse(customer, entity.Today()))
}

// CancelEdit godoc
// @Summary      Cancelar la edición
// @Tags         customers
// @Security     BearerAuth
// @Success      204
// @Router       /api/customers/editing [delete]
func (h *CustomerHandler) CancelEdit(c *fiber.Ctx) error {
	h.sessions.Cancel(GetSessionID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportXLSX godoc
// @Summary      Exportar clientes a Excel
// @Tags         customers
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/customers/export.xlsx [get]
func (h *CustomerHandler) ExportXLSX(c *fiber.Ctx) error {
	data, filename, err := h.export.ExportXLSX(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, excel.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

func editingResponse(customer *entity.Customer) dto.EditingResponse {
	if customer == nil {
		return dto.EditingResponse{State: customers.StateIdle}
	}
	resp := customers.ToResponse(customer, entity.Today())
	return dto.EditingResponse{State: customers.StateEditing, Customer: &resp}
}
