package controllers

import (
	"net/http"

	"github.com/nahidhasan/messmate-backend/api/responses"
	"github.com/nahidhasan/messmate-backend/api/validators"
	"github.com/nahidhasan/messmate-backend/internal/houses"
	"github.com/nahidhasan/messmate-backend/internal/users"
	pkgerrors "github.com/nahidhasan/messmate-backend/pkg/errors"
	"github.com/nahidhasan/messmate-backend/pkg/logger"
)

type addMemberRequest struct {
	Email        string `json:"email" validate:"required,email"`
	FullName     string `json:"full_name" validate:"required"`
	Phone        string `json:"phone,omitempty"`
	TempPassword string `json:"temp_password,omitempty"`
}

type addMemberResponse struct {
	User         *users.UserDTO `json:"user"`
	TempPassword string         `json:"temp_password,omitempty"`
}

// HouseListMembers returns the caller's house roster, manager first.
func HouseListMembers(svc houses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "house service unavailable"))
			return
		}

		houseCode, err := actorHouseCode(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		members, err := svc.ListMembers(r.Context(), houseCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, members)
	}
}

// HouseAddMember creates a member account in the manager's house. The
// temporary password is echoed back exactly once when it was generated.
func HouseAddMember(svc houses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "house service unavailable"))
			return
		}

		houseCode, err := actorHouseCode(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addMemberRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		member, tempPassword, err := svc.AddMember(r.Context(), houseCode, houses.AddMemberInput{
			Email:        body.Email,
			FullName:     body.FullName,
			Phone:        body.Phone,
			TempPassword: body.TempPassword,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, addMemberResponse{
			User:         member,
			TempPassword: tempPassword,
		})
	}
}

// HouseRemoveMember deletes a member account from the manager's house.
func HouseRemoveMember(svc houses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "house service unavailable"))
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

		memberID, err := validators.ParsePathUUID(r, "memberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveMember(r.Context(), callerID, houseCode, memberID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}
