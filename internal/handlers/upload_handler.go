package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-tracker/internal/services"
)

type UploadHandler struct {
	Uploads *services.UploadService
}

func NewUploadHandler(uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{Uploads: uploads}
}

// Upload is POST /upload (multipart: file, type, applicationId)
func (h *UploadHandler) Upload(c *gin.Context) {
	if !h.Uploads.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "File upload not configured. Please set up storage credentials."})
		return
	}

	in := services.UploadInput{
		Kind:          services.DocumentKind(c.PostForm("type")),
		ApplicationID: c.PostForm("applicationId"),
	}

	var file multipart.File
	if header, err := c.FormFile("file"); err == nil {
		file, err = header.Open()
		if err != nil {
			respondError(c, err, "File", "process upload")
			return
		}
		defer file.Close()

		in.File = file
		in.FileName = header.Filename
		in.ContentType = header.Header.Get("Content-Type")
		in.Size = header.Size
	}

	res, err := h.Uploads.Upload(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "File", "upload file")
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete is DELETE /upload?path=
func (h *UploadHandler) Delete(c *gin.Context) {
	if !h.Uploads.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "File upload not configured"})
		return
	}
	if err := h.Uploads.Delete(c.Request.Context(), c.Query("path")); err != nil {
		respondError(c, err, "File", "delete file")
		return
	}
	deleted(c)
}
