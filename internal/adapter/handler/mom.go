package handler

import (
	"os"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/mom-service/errors"
	"github.com/johnquangdev/mom-service/internal/adapter/dto/mom"
	"github.com/johnquangdev/mom-service/internal/adapter/presenter"
	httpmw "github.com/johnquangdev/mom-service/internal/infrastructure/http/middleware"
	momUsecase "github.com/johnquangdev/mom-service/internal/usecase/mom"
	pkgvalidator "github.com/johnquangdev/mom-service/pkg/validator"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// MOM handles meeting-minutes HTTP requests
type MOM struct {
	momService momUsecase.Service
	logger     *zap.Logger
}

// NewMOMHandler creates a new MOM handler
func NewMOMHandler(momService momUsecase.Service, logger *zap.Logger) *MOM {
	return &MOM{
		momService: momService,
		logger:     logger,
	}
}

// ProcessText handles POST /mom/process-text
// @Summary      Process meeting notes
// @Description  Translates foreign-script notes and corrects grammar (model when useAI and configured, local rules otherwise). useAI defaults to true. Never fails once the text is accepted.
// @Tags         MOM
// @Accept       json
// @Produce      json
// @Param        request  body      mom.ProcessTextRequest  true  "Notes to process"
// @Success      200      {object}  entities.ProcessingResult
// @Failure      400      {object}  map[string]interface{}  "Text is required"
// @Failure      429      {object}  map[string]interface{}  "Rate limited"
// @Router       /mom/process-text [post]
func (h *MOM) ProcessText(c echo.Context) error {
	var req mom.ProcessTextRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.momService.ProcessText(c.Request().Context(), req.Text, req.WantsAI())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// Preview handles POST /mom/preview
// @Summary      Preview discussion points
// @Description  Splits text into discussion points; continuation lines stay with their point and unmarked text becomes a single point
// @Tags         MOM
// @Accept       json
// @Produce      json
// @Param        request  body      mom.PreviewRequest  true  "Text to split"
// @Success      200      {object}  mom.PreviewResponse
// @Failure      400      {object}  map[string]interface{}  "Text is required"
// @Router       /mom/preview [post]
func (h *MOM) Preview(c echo.Context) error {
	var req mom.PreviewRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	points, err := h.momService.Preview(c.Request().Context(), req.Text)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, mom.PreviewResponse{DiscussionPoints: points, Count: len(points)})
}

// Save handles POST /mom/save
// @Summary      Save a MOM
// @Description  Validates required fields and the task, derives discussion points, normalizes attendees and images, then persists
// @Tags         MOM
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      mom.SaveMOMRequest  true  "Meeting record"
// @Success      201      {object}  mom.MOMResponse
// @Failure      400      {object}  map[string]interface{}  "Missing or malformed fields"
// @Failure      404      {object}  map[string]interface{}  "Task not found"
// @Router       /mom/save [post]
func (h *MOM) Save(c echo.Context) error {
	var req mom.SaveMOMRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		if userID, ok := c.Get(httpmw.UserIDKey).(uuid.UUID); ok {
			createdBy = userID.String()
		}
	}

	record, err := h.momService.Save(c.Request().Context(), momUsecase.SaveInput{
		TaskID:           req.TaskID,
		CompanyName:      req.CompanyName,
		VisitDate:        req.VisitDate,
		Location:         req.Location,
		Attendees:        req.Attendees,
		RawContent:       req.RawContent,
		ProcessedContent: req.ProcessedContent,
		Images:           req.Images,
		CreatedBy:        createdBy,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToMOMResponse(record))
}

// Generate handles POST /mom/generate-docx-from-template
// @Summary      Generate the MOM document
// @Description  Renders the Word template for a saved MOM and streams it as an attachment. Temporary files are removed afterwards.
// @Tags         MOM
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        request  body      mom.GenerateRequest  true  "MOM to render"
// @Success      200      {file}    file
// @Failure      400      {object}  map[string]interface{}  "Template not found, create it first"
// @Failure      404      {object}  map[string]interface{}  "MOM not found"
// @Failure      409      {object}  map[string]interface{}  "Generation already in progress"
// @Router       /mom/generate-docx-from-template [post]
func (h *MOM) Generate(c echo.Context) error {
	var req mom.GenerateRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	id, _ := uuid.Parse(req.MomID)

	doc, err := h.momService.Generate(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	defer h.momService.Cleanup(doc.DocPath, doc.PdfPath)

	if _, err := os.Stat(doc.DocPath); err != nil {
		return HandleError(h.logger, c, errors.ErrNotFound("Generated document file"))
	}

	if doc.ArchiveURL != "" {
		c.Response().Header().Set("X-Archive-URL", doc.ArchiveURL)
	}
	c.Response().Header().Set(echo.HeaderContentType, docxContentType)
	return c.Attachment(doc.DocPath, doc.DownloadName)
}

// Regenerate handles POST /mom/regenerate-docx-from-template/:momId
// @Summary      Regenerate the MOM document
// @Description  Removes previously generated artifacts and renders the document again
// @Tags         MOM
// @Produce      json
// @Param        momId  path      string  true  "MOM ID"
// @Success      200    {object}  mom.RegenerateResponse
// @Failure      400    {object}  map[string]interface{}  "Invalid ID or template missing"
// @Failure      404    {object}  map[string]interface{}  "MOM not found"
// @Failure      409    {object}  map[string]interface{}  "Generation already in progress"
// @Router       /mom/regenerate-docx-from-template/{momId} [post]
func (h *MOM) Regenerate(c echo.Context) error {
	id, err := parseID(c, "momId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	doc, err := h.momService.Regenerate(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRegenerateResponse(doc))
}

// History handles GET /mom/history/:taskId
// @Summary      MOM history of a task
// @Tags         MOM
// @Produce      json
// @Param        taskId  path      string  true  "Task ID"
// @Success      200     {array}   mom.MOMResponse
// @Failure      400     {object}  map[string]interface{}  "Invalid task ID"
// @Router       /mom/history/{taskId} [get]
func (h *MOM) History(c echo.Context) error {
	taskID, err := parseID(c, "taskId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	records, err := h.momService.History(c.Request().Context(), taskID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMOMListResponse(records))
}

// TasksWithMOMs handles GET /mom/tasks-with-moms
// @Summary      Tasks that have MOMs
// @Tags         MOM
// @Produce      json
// @Success      200  {array}  mom.TaskWithMOMsResponse
// @Router       /mom/tasks-with-moms [get]
func (h *MOM) TasksWithMOMs(c echo.Context) error {
	counts, err := h.momService.TasksWithMOMs(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTasksWithMOMsResponse(counts))
}

// View handles GET /mom/view/:momId
// @Summary      Get a MOM
// @Tags         MOM
// @Produce      json
// @Param        momId  path      string  true  "MOM ID"
// @Success      200    {object}  mom.MOMResponse
// @Failure      404    {object}  map[string]interface{}  "MOM not found"
// @Router       /mom/view/{momId} [get]
func (h *MOM) View(c echo.Context) error {
	id, err := parseID(c, "momId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	record, err := h.momService.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMOMResponse(record))
}

// Delete handles DELETE /mom/:momId
// @Summary      Delete a MOM
// @Description  Deletes the record and any generated artifacts
// @Tags         MOM
// @Produce      json
// @Security     BearerAuth
// @Param        momId  path      string  true  "MOM ID"
// @Success      200    {object}  map[string]interface{}
// @Failure      404    {object}  map[string]interface{}  "MOM not found"
// @Router       /mom/{momId} [delete]
func (h *MOM) Delete(c echo.Context) error {
	id, err := parseID(c, "momId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.momService.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"momId": id.String()})
}

// Diagnostics handles GET /mom/test
// @Summary      MOM routes status
// @Tags         MOM
// @Produce      json
// @Success      200  {object}  mom.DiagnosticsResponse
// @Router       /mom/test [get]
func (h *MOM) Diagnostics(routes []string) echo.HandlerFunc {
	return func(c echo.Context) error {
		st := h.momService.Status()
		return HandleSuccess(h.logger, c, mom.DiagnosticsResponse{
			Message:        "MOM routes are working",
			TemplateExists: st.TemplateExists,
			TemplatePath:   st.TemplatePath,
			AIAvailable:    st.AIAvailable,
			Routes:         routes,
		})
	}
}

func (h *MOM) bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrValidation("Validation failed", pkgvalidator.Fields(err)...)
	}
	return nil
}

func parseID(c echo.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument(param + " must be a valid UUID").WithDetail(param, c.Param(param))
	}
	return id, nil
}
