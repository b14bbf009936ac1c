package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/contacts-api/internal/dto"
	"github.com/prperemyshlev/contacts-api/internal/service"
)

// ContactHandler handles contact requests
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// Create handles contact creation
// @Summary Create a contact
// @Description Add a contact to the current user's address book
// @Tags contacts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Contact data"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewContactResponse(contact))
}

// List handles listing all contacts
// @Summary List contacts
// @Description List all contacts of the current user
// @Tags contacts
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ContactResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponses(contacts))
}

// Get handles reading a single contact. The path slot doubles as the
// birthdays query: "birthdays_in_7_days" lists contacts with a birthday in
// the next 7 days instead of looking up an id.
// @Summary Get a contact
// @Description Get one contact, or the upcoming birthdays via birthdays_in_{n}_days
// @Tags contacts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Contact id"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if days, ok := parseBirthdaysPath(id); ok {
		h.upcomingBirthdays(c, user.ID, days)
		return
	}

	contact, err := h.contactService.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponse(contact))
}

// Update handles contact updates
// @Summary Update a contact
// @Description Replace the fields of one of the current user's contacts
// @Tags contacts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Contact id"
// @Param request body dto.ContactRequest true "Contact data"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), user.ID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponse(contact))
}

// Delete handles contact deletion
// @Summary Delete a contact
// @Description Remove one of the current user's contacts
// @Tags contacts
// @Security BearerAuth
// @Param id path string true "Contact id"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ContactHandler) upcomingBirthdays(c *gin.Context, ownerID string, days int) {
	contacts, err := h.contactService.UpcomingBirthdays(c.Request.Context(), ownerID, days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponses(contacts))
}

// parseBirthdaysPath recognizes the "birthdays_in_{n}_days" path literal.
func parseBirthdaysPath(id string) (int, bool) {
	if !strings.HasPrefix(id, "birthdays_in_") || !strings.HasSuffix(id, "_days") {
		return 0, false
	}

	days, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(id, "birthdays_in_"), "_days"))
	if err != nil || days < 0 {
		return 0, false
	}

	return days, true
}
