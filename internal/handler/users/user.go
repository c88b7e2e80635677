package users

import (
	"net/http"

	"user-management/internal/api"
	"user-management/internal/handler"
	"user-management/internal/validate"

	"github.com/labstack/echo/v4"
)

// @Summary     List users
// @Description Returns every user; password hashes are never included
// @Tags        users
// @Produce     json
// @Success     200 {object} api.Envelope{data=[]api.UserResponse}
// @Failure     500 {object} api.Envelope
// @Router      /users [get]
func ListUsersHandler(svc handler.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := svc.List(c.Request().Context())
		if err != nil {
			return handler.Error(c, err, "Failed to retrieve users")
		}
		return handler.OK(c, http.StatusOK, "Users retrieved successfully", api.NewUserListResponse(users))
	}
}

// @Summary     Create a user
// @Description Validates the payload, hashes the password and stores the account. The email is trimmed and lowercased.
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "New user"
// @Success     201  {object} api.Envelope{data=api.UserResponse}
// @Failure     400  {object} api.Envelope
// @Failure     409  {object} api.Envelope
// @Failure     500  {object} api.Envelope
// @Router      /users [post]
func CreateUserHandler(svc handler.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := handler.BindJSON(c, &req); err != nil {
			return handler.Error(c, err, "Failed to create user")
		}
		in, err := validate.CreateUser(&req)
		if err != nil {
			return handler.Error(c, err, "Failed to create user")
		}

		user, err := svc.Create(c.Request().Context(), in.Name, in.Email, in.Password)
		if err != nil {
			return handler.Error(c, err, "Failed to create user")
		}
		return handler.OK(c, http.StatusCreated, "User created successfully", api.NewUserResponse(*user))
	}
}

// @Summary     Get a user by ID
// @Tags        users
// @Produce     json
// @Param       id  path     int true "User ID"
// @Success     200 {object} api.Envelope{data=api.UserResponse}
// @Failure     400 {object} api.Envelope
// @Failure     404 {object} api.Envelope
// @Failure     500 {object} api.Envelope
// @Router      /user/{id} [get]
func GetUserHandler(svc handler.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := validate.UserID(c.Param("id"))
		if err != nil {
			return handler.Error(c, err, "Failed to retrieve user")
		}
		user, err := svc.Get(c.Request().Context(), id)
		if err != nil {
			return handler.Error(c, err, "Failed to retrieve user")
		}
		return handler.OK(c, http.StatusOK, "User retrieved successfully", api.NewUserResponse(*user))
	}
}

// @Summary     Update a user by ID
// @Description Changes name and/or email; at least one is required. The password cannot be changed.
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "User ID"
// @Param       body body     api.UpdateUserRequest true "Fields to change"
// @Success     200  {object} api.Envelope{data=api.UserResponse}
// @Failure     400  {object} api.Envelope
// @Failure     404  {object} api.Envelope
// @Failure     409  {object} api.Envelope
// @Failure     500  {object} api.Envelope
// @Router      /user/{id} [put]
func UpdateUserHandler(svc handler.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := validate.UserID(c.Param("id"))
		if err != nil {
			return handler.Error(c, err, "Failed to update user")
		}
		var req api.UpdateUserRequest
		if err := handler.BindJSON(c, &req); err != nil {
			return handler.Error(c, err, "Failed to update user")
		}
		changes, err := validate.UpdateUser(&req)
		if err != nil {
			return handler.Error(c, err, "Failed to update user")
		}

		user, err := svc.Update(c.Request().Context(), id, changes.Name, changes.Email)
		if err != nil {
			return handler.Error(c, err, "Failed to update user")
		}
		if user == nil {
			return handler.Fail(c, http.StatusNotFound, "User not found")
		}
		return handler.OK(c, http.StatusOK, "User updated successfully", api.NewUserResponse(*user))
	}
}

// @Summary     Delete a user by ID
// @Tags        users
// @Produce     json
// @Param       id  path     int true "User ID"
// @Success     200 {object} api.Envelope
// @Failure     400 {object} api.Envelope
// @Failure     404 {object} api.Envelope
// @Failure     500 {object} api.Envelope
// @Router      /user/{id} [delete]
func DeleteUserHandler(svc handler.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := validate.UserID(c.Param("id"))
		if err != nil {
			return handler.Error(c, err, "Failed to delete user")
		}
		deleted, err := svc.Delete(c.Request().Context(), id)
		if err != nil {
			return handler.Error(c, err, "Failed to delete user")
		}
		if !deleted {
			return handler.Fail(c, http.StatusNotFound, "User not found")
		}
		return handler.OK(c, http.StatusOK, "User deleted successfully", nil)
	}
}

// @Summary     Search users by name
// @Description Case-insensitive substring match on the user name
// @Tags        users
// @Produce     json
// @Param       name query    string true "Name fragment (letters, spaces, hyphens, apostrophes)"
// @Success     200  {object} api.Envelope{data=[]api.UserResponse}
// @Failure     400  {object} api.Envelope
// @Failure     500  {object} api.Envelope
// @Router      /search [get]
func SearchUsersHandler(svc handler.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.QueryParam("name")
		if name == "" {
			return handler.Fail(c, http.StatusBadRequest, "Name parameter is required")
		}
		term, err := validate.SearchName(name)
		if err != nil {
			return handler.Error(c, err, "Failed to search users")
		}
		users, err := svc.Search(c.Request().Context(), term)
		if err != nil {
			return handler.Error(c, err, "Failed to search users")
		}
		return handler.OK(c, http.StatusOK, "Search completed successfully", api.NewUserListResponse(users))
	}
}
