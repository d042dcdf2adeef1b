package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

// personHandler handles HTTP requests related to camp attendees.
type personHandler struct {
	personService portssvc.PersonSvcFacade
	saleService   portssvc.SaleSvcFacade
}

// RegisterPersonRoutes registers the attendee routes.
func RegisterPersonRoutes(rg *gin.RouterGroup, personService portssvc.PersonSvcFacade, saleService portssvc.SaleSvcFacade) {
	h := &personHandler{personService: personService, saleService: saleService}

	people := rg.Group("/people")
	{
		people.POST("", h.createPerson)
		people.GET("", h.listPeople)
		people.GET("/:personID", h.getPerson)
		people.PUT("/:personID", h.updatePerson)
		people.DELETE("/:personID", h.deletePerson)
		people.POST("/:personID/payments", h.registerPayment)
		people.POST("/:personID/settle-debt", h.settleDebt)
	}
}

// createPerson godoc
// @Summary Register an attendee
// @Tags people
// @Accept json
// @Produce json
// @Param person body dto.CreatePersonRequest true "Attendee details"
// @Success 201 {object} dto.PersonResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /people [post]
func (h *personHandler) createPerson(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "CreatePerson")
		return
	}

	person, err := h.personService.CreatePerson(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create person")
		return
	}
	logger.Info("Person created", slog.String("person_id", person.PersonID))
	c.JSON(http.StatusCreated, dto.ToPersonResponse(person))
}

// listPeople godoc
// @Summary List attendees
// @Tags people
// @Produce json
// @Success 200 {array} dto.PersonResponse
// @Security BearerAuth
// @Router /people [get]
func (h *personHandler) listPeople(c *gin.Context) {
	logger, _ := requestContext(c)
	people, err := h.personService.ListPeople(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list people")
		return
	}
	c.JSON(http.StatusOK, dto.ToPersonResponses(people))
}

// getPerson godoc
// @Summary Get an attendee
// @Tags people
// @Produce json
// @Param personID path string true "Person ID"
// @Success 200 {object} dto.PersonResponse
// @Failure 404 {object} map[string]string "Person not found"
// @Security BearerAuth
// @Router /people/{personID} [get]
func (h *personHandler) getPerson(c *gin.Context) {
	logger, _ := requestContext(c)
	person, err := h.personService.GetPerson(c.Request.Context(), c.Param("personID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve person")
		return
	}
	c.JSON(http.StatusOK, dto.ToPersonResponse(person))
}

// updatePerson godoc
// @Summary Update an attendee
// @Tags people
// @Accept json
// @Produce json
// @Param personID path string true "Person ID"
// @Param person body dto.UpdatePersonRequest true "Fields to change"
// @Success 200 {object} dto.PersonResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Person not found"
// @Security BearerAuth
// @Router /people/{personID} [put]
func (h *personHandler) updatePerson(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "UpdatePerson")
		return
	}

	person, err := h.personService.UpdatePerson(c.Request.Context(), c.Param("personID"), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update person")
		return
	}
	c.JSON(http.StatusOK, dto.ToPersonResponse(person))
}

// deletePerson godoc
// @Summary Delete an attendee
// @Description Refused while the person has pending canteen debt
// @Tags people
// @Param personID path string true "Person ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Person not found"
// @Failure 409 {object} map[string]string "Pending debt"
// @Security BearerAuth
// @Router /people/{personID} [delete]
func (h *personHandler) deletePerson(c *gin.Context) {
	logger, actor := requestContext(c)
	personID := c.Param("personID")
	if err := h.personService.DeletePerson(c.Request.Context(), personID, actor); err != nil {
		respondError(c, logger, err, "Failed to delete person")
		return
	}
	logger.Info("Person deleted", slog.String("person_id", personID))
	c.Status(http.StatusNoContent)
}

// registerPayment godoc
// @Summary Register a registration payment
// @Tags people
// @Accept json
// @Produce json
// @Param personID path string true "Person ID"
// @Param payment body dto.RegisterPaymentRequest true "Payment"
// @Success 200 {object} dto.PersonResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Person not found"
// @Security BearerAuth
// @Router /people/{personID}/payments [post]
func (h *personHandler) registerPayment(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "RegisterPayment")
		return
	}

	person, err := h.personService.RegisterPayment(c.Request.Context(), c.Param("personID"), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to register payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPersonResponse(person))
}

// settleDebt godoc
// @Summary Settle a person's whole tab
// @Description Pays off every pending sale of the person with one aggregate ledger row. 204 when there is nothing to settle.
// @Tags people
// @Accept json
// @Produce json
// @Param personID path string true "Person ID"
// @Param settlement body dto.SettleRequest true "Payment method"
// @Success 200 {object} dto.TransactionResponse
// @Success 204 "Nothing to settle"
// @Failure 400 {object} map[string]string "Invalid payment method"
// @Failure 404 {object} map[string]string "Person not found"
// @Security BearerAuth
// @Router /people/{personID}/settle-debt [post]
func (h *personHandler) settleDebt(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "SettleAllCustomerDebt")
		return
	}

	personID := c.Param("personID")
	txn, err := h.saleService.SettleAllCustomerDebt(c.Request.Context(), personID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to settle debt")
		return
	}
	if txn == nil {
		logger.Info("No pending debt to settle", slog.String("person_id", personID))
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
