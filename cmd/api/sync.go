package main

import (
	"net/http"

	"github.com/go-chi/chi"
)

type CreateSyncTaskRequest struct {
	LocationID string `json:"location_id"`
}

// createSyncTaskHandler godoc
//
//	@Summary		Request a catalog sync
//	@Description	Queues a background refresh of the full catalog
//	@Tags			sync
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSyncTaskRequest	false	"Sync options"
//	@Success		201		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/sync [post]
func (app *application) createSyncTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateSyncTaskRequest
	if r.ContentLength > 0 {
		if err := readJson(w, r, &req); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
	}

	task, err := app.syncService.CreateSyncTask(r.Context(), req.LocationID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"task_id": task.ID.Hex(),
		"status":  string(task.Status),
	}

	if err := app.jsonRespone(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getSyncTaskHandler godoc
//
//	@Summary		Get sync task status
//	@Description	Get the status of a catalog sync task
//	@Tags			sync
//	@Produce		json
//	@Param			task_id	path		string	true	"Task ID"
//	@Success		200		{object}	domain.SyncTask
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/sync/{task_id} [get]
func (app *application) getSyncTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "task_id")
	if taskID == "" {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	task, err := app.syncService.GetTaskStatus(r.Context(), taskID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, task); err != nil {
		app.internalServerError(w, r, err)
	}
}
