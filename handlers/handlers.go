package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nerggg/wavsteg/models"
	"github.com/nerggg/wavsteg/service"
)

// Handlers holds the service dependencies the HTTP layer drives.
type Handlers struct {
	steganographyService service.SteganographyService
	cryptographyService  service.CryptographyService
	audioService         service.AudioService
}

// NewHandlers creates a new handlers instance with injected services.
func NewHandlers(
	stegoService service.SteganographyService,
	cryptoService service.CryptographyService,
	audioService service.AudioService,
) *Handlers {
	return &Handlers{
		steganographyService: stegoService,
		cryptographyService:  cryptoService,
		audioService:         audioService,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// CapacityResponse represents the capacity calculation response.
type CapacityResponse struct {
	Capacities       models.CapacityResult `json:"capacities"`
	FileInfo         FileInfo              `json:"file_info"`
	ProcessingTimeMs int                   `json:"processing_time_ms"`
}

// FileInfo represents carrier file information.
type FileInfo struct {
	Filename  string `json:"filename"`
	SizeBytes int    `json:"size_bytes"`
}

// HealthHandler handles the health check endpoint.
//
//	@Summary		Health Check
//	@Description	Returns the health status of the API service
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"Service is healthy"
//	@Router			/health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
	})
}

// CalculateCapacityHandler handles the capacity calculation request.
//
//	@Summary		Calculate WAV Embedding Capacity
//	@Description	Calculates the maximum payload size, in bytes, that can be embedded into an uploaded WAV file for lsb widths 1-4 at the given sample stride.
//	@Tags			Steganography
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			audio	formData	file					true	"WAV carrier file"
//	@Param			stride	formData	int						false	"Sample stride (default 1)"
//	@Success		200		{object}	CapacityResponse		"Successfully calculated embedding capacity"
//	@Failure		400		{object}	models.ErrorResponse	"Bad request"
//	@Failure		500		{object}	models.ErrorResponse	"Internal server error"
//	@Router			/capacity [post]
func (h *Handlers) CalculateCapacityHandler(c *gin.Context) {
	start := time.Now()
	requestID := requestIDFrom(c)

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		log.Printf("[ERROR] [%s] CalculateCapacityHandler: no audio file provided: %v", requestID, err)
		sendError(c, http.StatusBadRequest, "MISSING_FILE", "WAV file not provided")
		return
	}

	audioData, err := readFormFile(fileHeader)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read uploaded file")
		return
	}

	stride := 1
	if strideStr := c.PostForm("stride"); strideStr != "" {
		if s, err := strconv.Atoi(strideStr); err == nil {
			stride = s
		}
	}

	capacities, err := h.steganographyService.CalculateCapacity(audioData, stride)
	if err != nil {
		handleDomainError(c, requestID, "CalculateCapacityHandler", err)
		return
	}

	processingTime := int(time.Since(start).Milliseconds())
	c.Header("X-Processing-Time", strconv.Itoa(processingTime))
	c.JSON(http.StatusOK, CapacityResponse{
		Capacities: *capacities,
		FileInfo: FileInfo{
			Filename:  fileHeader.Filename,
			SizeBytes: int(fileHeader.Size),
		},
		ProcessingTimeMs: processingTime,
	})
}

// EmbedHandler embeds a secret file into a WAV carrier.
//
//	@Summary		Embed a secret file into a WAV carrier
//	@Description	Embeds a secret file into the provided WAV file using the configurable LSB/stride/error-correction/cipher transform stack.
//	@Tags			Steganography
//	@Accept			multipart/form-data
//	@Produce		audio/wav
//	@Param			audio		formData	file	true	"Cover WAV file"
//	@Param			secret		formData	file	true	"Secret file to embed"
//	@Param			lsb			formData	int		false	"Bits per targeted sample byte (1-8, default 1)"
//	@Param			stride		formData	int		false	"Sample stride (default 1)"
//	@Param			repeat_data	formData	bool	false	"Wrap the payload to fill carrier capacity"
//	@Param			ec_tag		formData	string	false	"Error-correction tag: none|hamming"
//	@Param			ec_param	formData	int		false	"EC parameter (Hamming redundant_bits, must be 4)"
//	@Param			enc_tag		formData	string	false	"Cipher tag: none|symmetric"
//	@Param			hash_tag	formData	string	false	"Key-derivation tag: none|pbkdf2"
//	@Param			stego_key	formData	string	false	"Password for the symmetric cipher"
//	@Success		200			{file}		binary					"Stego WAV file"
//	@Failure		400			{object}	models.ErrorResponse	"Invalid input"
//	@Failure		500			{object}	models.ErrorResponse	"Processing error"
//	@Router			/embed [post]
func (h *Handlers) EmbedHandler(c *gin.Context) {
	start := time.Now()
	requestID := requestIDFrom(c)

	audioHeader, err := c.FormFile("audio")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_FILES", "Cover WAV file not provided")
		return
	}
	audioData, err := readFormFile(audioHeader)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read cover file")
		return
	}

	secretHeader, err := c.FormFile("secret")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_FILES", "Secret file not provided")
		return
	}
	secretData, err := readFormFile(secretHeader)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read secret file")
		return
	}

	lsbStr := c.DefaultPostForm("lsb", "1")
	lsbVal, err := strconv.Atoi(lsbStr)
	if err != nil || lsbVal < 1 || lsbVal > 8 {
		sendError(c, http.StatusBadRequest, "INVALID_LSB", "lsb must be between 1 and 8")
		return
	}

	stride, err := strconv.Atoi(c.DefaultPostForm("stride", "1"))
	if err != nil || stride < 1 {
		sendError(c, http.StatusBadRequest, "INVALID_STRIDE", "stride must be at least 1")
		return
	}

	ecParam, _ := strconv.Atoi(c.DefaultPostForm("ec_param", "4"))

	embedReq := &models.EmbedRequest{
		CoverWav:   audioData,
		Secret:     secretData,
		SecretName: secretHeader.Filename,
		LSB:        lsbVal,
		Stride:     stride,
		RepeatData: c.PostForm("repeat_data") == "true",
		ECTag:      c.DefaultPostForm("ec_tag", "none"),
		ECParam:    ecParam,
		EncTag:     c.DefaultPostForm("enc_tag", "none"),
		HashTag:    c.DefaultPostForm("hash_tag", "none"),
		StegoKey:   c.PostForm("stego_key"),
	}

	resp, err := h.steganographyService.Embed(embedReq)
	if err != nil {
		handleDomainError(c, requestID, "EmbedHandler", err)
		return
	}

	processingTime := int(time.Since(start).Milliseconds())
	outputFilename := c.DefaultPostForm("output_filename", "stego.wav")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outputFilename))
	c.Header("X-PSNR-Value", fmt.Sprintf("%.2f", resp.PSNR))
	c.Header("X-Secret-Size", strconv.Itoa(resp.SecretSizeBytes))
	c.Header("X-Processing-Time", strconv.Itoa(processingTime))
	c.Data(http.StatusOK, "audio/wav", resp.StegoWav)
}

// ExtractHandler extracts a secret file from a stego WAV carrier.
//
//	@Summary		Extract a secret file from a stego WAV carrier
//	@Description	Extracts the payload previously embedded with matching lsb/stride/cipher parameters; the frame header does not carry lsb/stride (see design notes).
//	@Tags			Steganography
//	@Accept			multipart/form-data
//	@Produce		application/octet-stream
//	@Param			stego_audio	formData	file	true	"Stego WAV file"
//	@Param			lsb			formData	int		true	"lsb used at embed time"
//	@Param			stride		formData	int		false	"stride used at embed time (default 1)"
//	@Param			stego_key	formData	string	false	"Password for the symmetric cipher"
//	@Success		200			{file}		binary					"Extracted secret file"
//	@Failure		400			{object}	models.ErrorResponse	"Invalid input"
//	@Failure		401			{object}	models.ErrorResponse	"Decryption failure"
//	@Failure		500			{object}	models.ErrorResponse	"Extraction error"
//	@Router			/extract [post]
func (h *Handlers) ExtractHandler(c *gin.Context) {
	start := time.Now()
	requestID := requestIDFrom(c)

	stegoHeader, err := c.FormFile("stego_audio")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_FILE", "Stego WAV file not provided")
		return
	}
	stegoData, err := readFormFile(stegoHeader)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to read stego file")
		return
	}

	lsbVal, err := strconv.Atoi(c.PostForm("lsb"))
	if err != nil || lsbVal < 1 || lsbVal > 8 {
		sendError(c, http.StatusBadRequest, "INVALID_LSB", "lsb must be between 1 and 8")
		return
	}
	stride, err := strconv.Atoi(c.DefaultPostForm("stride", "1"))
	if err != nil || stride < 1 {
		sendError(c, http.StatusBadRequest, "INVALID_STRIDE", "stride must be at least 1")
		return
	}

	extractReq := &models.ExtractRequest{
		StegoWav: stegoData,
		LSB:      lsbVal,
		Stride:   stride,
		StegoKey: c.PostForm("stego_key"),
	}

	resp, err := h.steganographyService.Extract(extractReq)
	if err != nil {
		handleDomainError(c, requestID, "ExtractHandler", err)
		return
	}

	processingTime := int(time.Since(start).Milliseconds())
	outputFilename := c.DefaultPostForm("output_filename", "secret.bin")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outputFilename))
	c.Header("X-Secret-Size", strconv.Itoa(resp.FileSize))
	c.Header("X-Processing-Time", strconv.Itoa(processingTime))
	c.Data(http.StatusOK, "application/octet-stream", resp.Secret)
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func requestIDFrom(c *gin.Context) string {
	if id := c.GetHeader("X-Trace-Id"); id != "" {
		return id
	}
	return fmt.Sprintf("req_%d", time.Now().UnixNano())
}

// handleDomainError maps a models.Error's Kind to the HTTP status code
// named in SPEC_FULL.md §6, falling back to 500 for anything else. The
// request-validation sentinels (ErrInvalidLSB, ErrInvalidStride,
// ErrInvalidStegoKey) aren't *models.Error but are still caller mistakes,
// so they're reported as 400 rather than falling through to 500.
func handleDomainError(c *gin.Context, requestID, handler string, err error) {
	log.Printf("[ERROR] [%s] %s: %v", requestID, handler, err)

	switch {
	case errors.Is(err, models.ErrInvalidLSB):
		sendError(c, http.StatusBadRequest, "INVALID_LSB", err.Error())
		return
	case errors.Is(err, models.ErrInvalidStride):
		sendError(c, http.StatusBadRequest, "INVALID_STRIDE", err.Error())
		return
	case errors.Is(err, models.ErrInvalidStegoKey):
		sendError(c, http.StatusBadRequest, "INVALID_STEGO_KEY", err.Error())
		return
	}

	domainErr, ok := err.(*models.Error)
	if !ok {
		sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Kind {
	case models.KindNotAWav, models.KindUnsupportedFormat, models.KindCapacityExceeded,
		models.KindCorruptFrame, models.KindTruncated:
		status = http.StatusBadRequest
	case models.KindDecryptFailure:
		status = http.StatusUnauthorized
	}

	sendError(c, status, string(domainErr.Kind), domainErr.Message)
}

// sendError sends a standardized error response.
func sendError(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, models.ErrorResponse{
		Success: false,
		Error: models.ErrorDetail{
			Message: message,
			Details: map[string]interface{}{
				"code": code,
			},
		},
	})
}
