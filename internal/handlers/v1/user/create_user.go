package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/claritybank/badge-server/internal/logging"
	"github.com/claritybank/badge-server/internal/service"
)

// CreateUserBody is the request body for creating a user.
type CreateUserBody struct {
	FirstName string `json:"firstName" minLength:"1" maxLength:"100" doc:"First name"`
	LastName  string `json:"lastName" minLength:"1" maxLength:"100" doc:"Last name"`
	Email     string `json:"email" format:"email" doc:"Email address"`
}

// CreateUserInput is the Huma input for creating a user.
type CreateUserInput struct {
	Body CreateUserBody
}

// CreateUserResponse is the response body for creating a user.
type CreateUserResponse struct {
	ID string `json:"id" doc:"Created user UUID"`
}

// CreateUserOutput is the Huma output for creating a user.
type CreateUserOutput struct {
	Status int
	Body   CreateUserResponse
}

type userCreator interface {
	CreateUser(ctx context.Context, user service.User) (uuid.UUID, error)
}

// CreateUserHandler handles POST /v1/user.
type CreateUserHandler struct {
	UserService userCreator
}

func NewCreateUserHandler(svc userCreator) *CreateUserHandler {
	return &CreateUserHandler{UserService: svc}
}

// Register registers the create user endpoint with the Huma API.
func (h *CreateUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-user",
		Method:        http.MethodPost,
		Path:          "/v1/user",
		Summary:       "Create a user",
		Description:   "Creates a user profile. The creation time is the signup time used by the early-bird badge.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateUserHandler) handle(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createUserMs")
	}
	id, err := h.UserService.CreateUser(ctx, service.User{
		FirstName: input.Body.FirstName,
		LastName:  input.Body.LastName,
		Email:     input.Body.Email,
	})
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create user", err)
	}

	if logData != nil {
		logData.AddData("userID", id.String())
	}

	return &CreateUserOutput{
		Status: http.StatusCreated,
		Body:   CreateUserResponse{ID: id.String()},
	}, nil
}
