package bucketfs

import (
	"errors"

	"object-storage/core/logger"
	"object-storage/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the filesystem verbs.
type Handler struct {
	store *Store
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store) *Handler {
	// Force import for Swagger
	var _ = storage.ObjectInfo{}
	return &Handler{store: store}
}

// PathsRequest is the body of batch endpoints.
type PathsRequest struct {
	Paths []string `json:"paths"`
}

// TransferRequest is the body of copy and move.
type TransferRequest struct {
	Src  string `json:"src"`
	Dest string `json:"dest"`
}

// RegisterRoutes registers the filesystem routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/fs")
	group.Get("/ls", h.HandleListOneLevel)
	group.Get("/list", h.HandleList)
	group.Get("/du", h.HandleUsage)
	group.Get("/exists", h.HandleExists)
	group.Post("/mkdir", h.HandleMakeDirectories)
	group.Delete("/object", h.HandleRemove)
	group.Delete("/dir", h.HandleRemoveDirectory)
	group.Post("/copy", h.HandleCopy)
	group.Post("/move", h.HandleMove)
}

// HandleListOneLevel lists one directory level.
// @Summary List Directory
// @Description Lists the direct children of a directory, subdirectories first.
// @Tags fs
// @Produce json
// @Param path query string false "Directory path (empty for the bucket root)"
// @Success 200 {array} storage.ObjectInfo
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /fs/ls [get]
func (h *Handler) HandleListOneLevel(c *fiber.Ctx) error {
	entries, err := h.store.ListOneLevel(c.Context(), c.Query("path"))
	if err != nil {
		return h.fail(c, "Listing failed", err)
	}
	return c.JSON(nonNil(entries))
}

// HandleList lists every object under a prefix.
// @Summary List Objects
// @Description Flat listing of every object under a prefix.
// @Tags fs
// @Produce json
// @Param prefix query string false "Key prefix (empty for the whole bucket)"
// @Success 200 {array} storage.ObjectInfo
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /fs/list [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	entries, err := h.store.List(c.Context(), c.Query("prefix"))
	if err != nil {
		return h.fail(c, "Listing failed", err)
	}
	return c.JSON(nonNil(entries))
}

// HandleUsage summarizes usage under a prefix.
// @Summary Usage
// @Description Object count, marker count and total bytes under a prefix.
// @Tags fs
// @Produce json
// @Param prefix query string false "Key prefix"
// @Success 200 {object} Usage
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /fs/du [get]
func (h *Handler) HandleUsage(c *fiber.Ctx) error {
	entries, err := h.store.Usage(c.Context(), c.Query("prefix"))
	if err != nil {
		return h.fail(c, "Usage failed", err)
	}
	return c.JSON(Summarize(entries))
}

// HandleExists checks a file or directory.
// @Summary Exists
// @Description Checks whether a file key, or with dir=true a directory marker, exists.
// @Tags fs
// @Produce json
// @Param path query string true "Key or directory path"
// @Param dir query boolean false "Check a directory marker"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /fs/exists [get]
func (h *Handler) HandleExists(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path is required"})
	}

	var ok bool
	var err error
	if c.QueryBool("dir") {
		ok, err = h.store.DirectoryExists(c.Context(), path)
	} else {
		ok, err = h.store.FileExists(c.Context(), path)
	}
	if err != nil {
		return h.fail(c, "Existence check failed", err)
	}
	return c.JSON(fiber.Map{"path": path, "exists": ok})
}

// HandleMakeDirectories creates directory markers.
// @Summary Make Directories
// @Description Creates a marker for each path. Existing directories are reported, not overwritten.
// @Tags fs
// @Accept json
// @Produce json
// @Param request body PathsRequest true "Directories to create"
// @Success 200 {array} Result
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /fs/mkdir [post]
func (h *Handler) HandleMakeDirectories(c *fiber.Ctx) error {
	var req PathsRequest
	if err := c.BodyParser(&req); err != nil || len(req.Paths) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "paths are required"})
	}

	results := h.store.MakeDirectories(c.Context(), req.Paths)
	if failed := Failed(results); len(failed) > 0 {
		logger.WithRayID(h.store.logger, c).Info("Some directories were not created", zap.Int("failed", len(failed)))
	}
	return c.JSON(results)
}

// HandleRemove removes one object.
// @Summary Remove Object
// @Tags fs
// @Produce json
// @Param path query string true "Object key"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /fs/object [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path is required"})
	}
	if err := h.store.Remove(c.Context(), path); err != nil {
		return h.fail(c, "Remove failed", err)
	}
	return c.JSON(fiber.Map{"status": string(StatusOK), "path": path})
}

// HandleRemoveDirectory removes everything under a prefix.
// @Summary Remove Directory
// @Description Deletes every object whose key starts with path.
// @Tags fs
// @Produce json
// @Param path query string true "Prefix"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /fs/dir [delete]
func (h *Handler) HandleRemoveDirectory(c *fiber.Ctx) error {
	path := c.Query("path")
	deleted, err := h.store.RemoveDirectory(c.Context(), path)
	if err != nil {
		logger.WithRayID(h.store.logger, c).Error("Remove directory failed", zap.String("path", path), zap.Int("deleted", deleted), zap.Error(err))
		return c.Status(statusCode(err)).JSON(fiber.Map{"error": err.Error(), "deleted": deleted})
	}
	return c.JSON(fiber.Map{"status": string(StatusOK), "path": path, "deleted": deleted})
}

// HandleCopy copies one object.
// @Summary Copy Object
// @Tags fs
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Source and destination keys"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /fs/copy [post]
func (h *Handler) HandleCopy(c *fiber.Ctx) error {
	var req TransferRequest
	if err := c.BodyParser(&req); err != nil || req.Src == "" || req.Dest == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "src and dest are required"})
	}
	if err := h.store.Copy(c.Context(), req.Src, req.Dest); err != nil {
		return h.fail(c, "Copy failed", err)
	}
	return c.JSON(newResult(req.Src, req.Dest, nil))
}

// HandleMove moves one object.
// @Summary Move Object
// @Description Copies, confirms the copy, then deletes the source. A failed delete is reported as copied_not_removed.
// @Tags fs
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Source and destination keys"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} Result "Internal Server Error"
// @Router /fs/move [post]
func (h *Handler) HandleMove(c *fiber.Ctx) error {
	var req TransferRequest
	if err := c.BodyParser(&req); err != nil || req.Src == "" || req.Dest == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "src and dest are required"})
	}
	err := h.store.Move(c.Context(), req.Src, req.Dest)
	if err != nil {
		logger.WithRayID(h.store.logger, c).Error("Move failed", zap.Error(err))
		return c.Status(statusCode(err)).JSON(newResult(req.Src, req.Dest, err))
	}
	return c.JSON(newResult(req.Src, req.Dest, nil))
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	logger.WithRayID(h.store.logger, c).Error(msg, zap.Error(err))
	return c.Status(statusCode(err)).JSON(fiber.Map{"error": err.Error()})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, ErrEmptyPath), errors.Is(err, ErrSameKey):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrDirectoryExists):
		return fiber.StatusConflict
	case errors.Is(err, ErrCopiedNotRemoved):
		return fiber.StatusInternalServerError
	case errors.Is(err, ErrObjectNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func nonNil(entries []storage.ObjectInfo) []storage.ObjectInfo {
	if entries == nil {
		return []storage.ObjectInfo{}
	}
	return entries
}
