package controllers

import (
	"net/http"

	"github.com/nahidhasan/messmate-backend/api/responses"
	"github.com/nahidhasan/messmate-backend/api/validators"
	"github.com/nahidhasan/messmate-backend/internal/handoff"
	pkgerrors "github.com/nahidhasan/messmate-backend/pkg/errors"
	"github.com/nahidhasan/messmate-backend/pkg/logger"
)

// ManagerSwitchRequest lets the manager nominate a member as successor.
func ManagerSwitchRequest(svc handoff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "handoff service unavailable"))
			return
		}

		callerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		houseCode, err := actorHouseCode(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body handoff.SendRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Send(r.Context(), callerID, houseCode, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "requested"})
	}
}

// ManagerSwitchRespond lets the nominated member approve or reject the
// pending handoff request.
func ManagerSwitchRespond(svc handoff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "handoff service unavailable"))
			return
		}

		callerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body handoff.RespondRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Respond(r.Context(), callerID, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": body.Action})
	}
}
