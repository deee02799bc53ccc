package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bisig_backend/internals/constants"
	"bisig_backend/internals/features/users/user/dto"
	"bisig_backend/internals/features/users/user/model"
	helper "bisig_backend/internals/helpers"
	helperAuth "bisig_backend/internals/helpers/auth"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

var userSortColumns = map[string]string{
	"name":       "user_name",
	"email":      "user_email",
	"role":       "user_role",
	"created_at": "user_created_at",
}

// GET /api/users?q=&role=&status=
func (uc *UserController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := uc.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(user_email) LIKE ?", like, like)
	}
	if role := strings.ToUpper(strings.TrimSpace(c.Query("role"))); role != "" {
		q = q.Where("user_role = ?", role)
	}
	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
		q = q.Where("user_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.ErrInternal("failed to count users", err)
	}
	var users []model.UserModel
	if err := p.Apply(q, userSortColumns, "created_at").Find(&users).Error; err != nil {
		return helper.ErrInternal("failed to list users", err)
	}
	return helper.JsonList(c, "Users fetched", dto.FromModels(users), helper.BuildMeta(total, p))
}

// GET /api/users/:id
func (uc *UserController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var user model.UserModel
	if err := uc.DB.WithContext(c.UserContext()).Where("user_id = ?", id).Take(&user).Error; err != nil {
		return helper.FromDB(err, "User not found", "")
	}
	return helper.JsonOK(c, "User fetched", dto.FromModel(&user))
}

// POST /api/users
func (uc *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	hash, err := helperAuth.HashPassword(req.Password)
	if err != nil {
		return helper.ErrInternal("password hashing failed", err)
	}
	req.Password = hash

	user := req.ToModel()
	if err := uc.DB.WithContext(c.UserContext()).Create(user).Error; err != nil {
		return helper.FromDB(err, "", "Email already registered")
	}
	zap.L().Info("user created by admin",
		zap.String("user_id", user.UserID.String()),
		zap.String("role", user.UserRole))
	return helper.JsonCreated(c, "User created", dto.FromModel(user))
}

// PATCH /api/users/:id
//
// An admin may not change their own role or status.
func (uc *UserController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	callerID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}

	db := uc.DB.WithContext(c.UserContext())
	var user model.UserModel
	if err := db.Where("user_id = ?", id).Take(&user).Error; err != nil {
		return helper.FromDB(err, "User not found", "")
	}

	if id == callerID {
		if req.Role != nil && *req.Role != user.UserRole {
			return helper.ErrValidation("cannot change your own role")
		}
		if req.Status != nil && *req.Status != user.UserStatus {
			return helper.ErrValidation("cannot change your own status")
		}
	}
	if req.Role != nil && !constants.IsValidRole(*req.Role) {
		return helper.ErrValidation("invalid role")
	}
	if req.Password != nil {
		hash, err := helperAuth.HashPassword(*req.Password)
		if err != nil {
			return helper.ErrInternal("password hashing failed", err)
		}
		req.Password = &hash
	}

	updates := req.Updates()
	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return helper.FromDB(err, "User not found", "Email already registered")
		}
		if err := db.Where("user_id = ?", id).Take(&user).Error; err != nil {
			return helper.FromDB(err, "User not found", "")
		}
	}
	return helper.JsonUpdated(c, "User updated", dto.FromModel(&user))
}
