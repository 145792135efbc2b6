package audio

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/minbarapp/minbar/pkg/errcodes"
	"github.com/minbarapp/minbar/pkg/models"
	"github.com/pkg/errors"
)

// allSourcesUnavailableMessage is surfaced directly to users, so it carries
// both English and Arabic.
const allSourcesUnavailableMessage = "Audio is currently unavailable from all sources. الصوت غير متوفر حالياً من جميع المصادر."

type handler struct {
	audioService *Service
	prober       *Prober
	probeTimeout time.Duration
}

// upload stores an admin-provided recitation file.
func (h *handler) upload(c echo.Context) error {
	ctx := c.Request().Context()

	params := UploadPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	file, ok := params.FormFiles["file"]
	if !ok {
		return errcodes.ValidationError(`"file" is required`)
	}

	upload, err := h.audioService.Store(ctx, file, params.Surah, params.Reciter)
	if err != nil {
		return err
	}

	resp := struct {
		Success bool           `json:"success"`
		File    *models.Upload `json:"file"`
	}{true, upload}

	return c.JSON(http.StatusCreated, resp)
}

// listen redirects the player to the first reachable source for a surah.
func (h *handler) listen(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListenQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	candidates, err := BuildCandidateList(params.Reciter, params.Surah)
	if err != nil {
		return err
	}

	baseURL := c.Scheme() + "://" + c.Request().Host
	resolved, err := h.prober.ResolveReachableSource(ctx, AbsoluteCandidates(candidates, baseURL), h.probeTimeout)
	if err != nil {
		if errors.Is(err, ErrNoReachableSource) {
			return errcodes.ServiceUnavailable(allSourcesUnavailableMessage)
		}
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusFound, resolved)
}

// sources returns the ordered candidate list without probing it.
func (h *handler) sources(c echo.Context) error {
	params := SourcesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	candidates, err := BuildCandidateList(params.Reciter, params.Surah)
	if err != nil {
		return err
	}

	resp := struct {
		Surah      int      `json:"surah"`
		Reciter    string   `json:"reciter"`
		Candidates []string `json:"candidates"`
	}{params.Surah, params.Reciter, candidates}

	return c.JSON(http.StatusOK, resp)
}

// listUploads returns upload records for the admin UI.
func (h *handler) listUploads(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListUploadsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	uploads, total, err := h.audioService.List(ctx, ListUploadsOptions(params))
	if err != nil {
		return err
	}

	resp := struct {
		Uploads []*models.Upload `json:"uploads"`
		Total   int              `json:"total"`
	}{uploads, total}

	return c.JSON(http.StatusOK, resp)
}
