package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/projectd/dealership-api/internal/auth"
	"github.com/projectd/dealership-api/internal/config"
	"github.com/projectd/dealership-api/internal/logger"
	"github.com/projectd/dealership-api/internal/middleware"
	"github.com/projectd/dealership-api/internal/repository"
)

// demoBypassPassword is the literal password accepted for any existing
// user when demo login is enabled.  This is a demo-stand convenience
// carried over from the original site; it is off by default and must
// stay off in production.
const demoBypassPassword = "password"

// AuthHandler bundles dependencies for the register/login/me endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/register.  The created user is returned
// without its password digest.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false, "message": "Все обязательные поля должны быть заполнены",
		})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false, "message": "Все обязательные поля должны быть заполнены",
		})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false, "message": "Пароль должен быть не менее 6 символов",
		})
	}
	if len(req.Username) < 3 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false, "message": "Логин должен быть не менее 3 символов",
		})
	}

	user, err := h.Users.Create(req.Username, req.Email, req.Password, req.FullName, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "Пользователь с таким email уже существует",
			})
		case errors.Is(err, repository.ErrUsernameExists):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false, "message": "Пользователь с таким логином уже существует",
			})
		default:
			logger.FromEcho(c).Error("register failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false, "message": "Ошибка сохранения пользователя",
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Регистрация успешна!",
		"user":    user.Sanitized(),
	})
}

// Login handles POST /api/login.  On success the response carries the
// sanitized user plus a bearer token for the session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false, "message": "Введите логин и пароль",
		})
	}

	user, err := h.Users.ByUsername(req.Username)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success": false, "message": "Пользователь не найден",
		})
	}

	bypass := h.Cfg.DemoLogin && req.Password == demoBypassPassword
	if bypass {
		logger.FromEcho(c).Warn("demo login bypass used", zap.String("username", user.Username))
	}
	if !bypass && !auth.VerifyPassword(req.Password, user.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success": false, "message": "Неверный пароль",
		})
	}

	token, err := auth.NewAccessToken(h.Cfg.JWTSecret, user, h.Cfg.AccessTTLMin)
	if err != nil {
		logger.FromEcho(c).Error("issue token failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false, "message": "Внутренняя ошибка сервера",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Вход выполнен успешно",
		"user":    user.Sanitized(),
		"token":   token.Token,
	})
}

// Me handles GET /api/me behind BearerAuth: it resolves the verified
// claims back to the stored user so the client's mirror never drifts
// from the collection.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := c.Get(middleware.CtxUserID).(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success": false, "message": "invalid token",
		})
	}
	user, err := h.Users.ByID(id)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success": false, "message": "Пользователь не найден",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    user.Sanitized(),
	})
}
