package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-tracker/internal/dtos"
	"github.com/justsurfingit/job-search-tracker/internal/services"
)

type ContactHandler struct {
	Contacts *services.ContactService
}

func NewContactHandler(contacts *services.ContactService) *ContactHandler {
	return &ContactHandler{Contacts: contacts}
}

func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.Contacts.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Contact", "fetch contacts")
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.Contacts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Contact", "fetch contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req dtos.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	contact, err := h.Contacts.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Contact", "create contact")
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Update(c *gin.Context) {
	var req dtos.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	contact, err := h.Contacts.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Contact", "update contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.Contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Contact", "delete contact")
		return
	}
	deleted(c)
}

// AddInteraction is POST /contacts/:id/interactions
func (h *ContactHandler) AddInteraction(c *gin.Context) {
	var req dtos.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	in, err := h.Contacts.AddInteraction(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Contact", "create interaction")
		return
	}
	c.JSON(http.StatusCreated, in)
}

// AddReminder is POST /contacts/:id/reminders
func (h *ContactHandler) AddReminder(c *gin.Context) {
	var req dtos.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	reminder, err := h.Contacts.AddReminder(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Contact", "create reminder")
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

// UpdateReminder is PUT /contacts/:id/reminders
func (h *ContactHandler) UpdateReminder(c *gin.Context) {
	var req dtos.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	reminder, err := h.Contacts.SetReminderCompleted(c.Request.Context(), c.Param("id"), req.ReminderID, *req.Completed)
	if err != nil {
		respondError(c, err, "Reminder", "update reminder")
		return
	}
	c.JSON(http.StatusOK, reminder)
}
