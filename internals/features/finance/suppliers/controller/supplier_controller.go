package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	expenseModel "bisig_backend/internals/features/finance/expenses/model"
	permModel "bisig_backend/internals/features/finance/permissions/model"
	permService "bisig_backend/internals/features/finance/permissions/service"
	"bisig_backend/internals/features/finance/suppliers/dto"
	"bisig_backend/internals/features/finance/suppliers/model"
	helper "bisig_backend/internals/helpers"
)

type SupplierController struct {
	DB *gorm.DB
}

func NewSupplierController(db *gorm.DB) *SupplierController {
	return &SupplierController{DB: db}
}

const msgDuplicateSupplier = "Supplier name already exists"

var supplierSortColumns = map[string]string{
	"name":       "supplier_name",
	"created_at": "supplier_created_at",
}

// GET /api/suppliers?q=&is_active=
func (sc *SupplierController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)
	q := sc.DB.WithContext(c.UserContext()).Model(&model.SupplierModel{})
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(supplier_name) LIKE ? OR LOWER(supplier_contact_person) LIKE ?", like, like)
	}
	if b, err := strconv.ParseBool(c.Query("is_active")); err == nil {
		q = q.Where("supplier_is_active = ?", b)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.ErrInternal("failed to count suppliers", err)
	}
	var rows []model.SupplierModel
	if err := p.Apply(q, supplierSortColumns, "name").Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to list suppliers", err)
	}
	out := make([]dto.SupplierResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i]))
	}
	return helper.JsonList(c, "Suppliers fetched", out, helper.BuildMeta(total, p))
}

// GET /api/suppliers/:id
func (sc *SupplierController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var m model.SupplierModel
	if err := sc.DB.WithContext(c.UserContext()).Where("supplier_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Supplier not found", "")
	}
	return helper.JsonOK(c, "Supplier fetched", dto.FromModel(&m))
}

// POST /api/suppliers
func (sc *SupplierController) Create(c *fiber.Ctx) error {
	if err := permService.Check(sc.DB, c, permModel.CapManageSuppliers, nil); err != nil {
		return err
	}
	var req dto.CreateSupplierRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m := req.ToModel()
	if err := sc.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.FromDB(err, "", msgDuplicateSupplier)
	}
	return helper.JsonCreated(c, "Supplier created", dto.FromModel(m))
}

// PUT /api/suppliers/:id
func (sc *SupplierController) Update(c *fiber.Ctx) error {
	if err := permService.Check(sc.DB, c, permModel.CapManageSuppliers, nil); err != nil {
		return err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateSupplierRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	db := sc.DB.WithContext(c.UserContext())
	var m model.SupplierModel
	if err := db.Where("supplier_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Supplier not found", "")
	}
	if updates := req.Updates(); len(updates) > 0 {
		if err := db.Model(&m).Updates(updates).Error; err != nil {
			return helper.FromDB(err, "Supplier not found", msgDuplicateSupplier)
		}
		if err := db.Where("supplier_id = ?", id).Take(&m).Error; err != nil {
			return helper.FromDB(err, "Supplier not found", "")
		}
	}
	return helper.JsonUpdated(c, "Supplier updated", dto.FromModel(&m))
}

// DELETE /api/suppliers/:id
//
// Suppliers referenced by expenses are deactivated instead of deleted.
func (sc *SupplierController) Delete(c *fiber.Ctx) error {
	if err := permService.Check(sc.DB, c, permModel.CapManageSuppliers, nil); err != nil {
		return err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	deactivated := false
	err = sc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&expenseModel.ExpenseModel{}).Where("expense_supplier_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			res := tx.Model(&model.SupplierModel{}).Where("supplier_id = ?", id).Update("supplier_is_active", false)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			deactivated = true
			return nil
		}
		res := tx.Where("supplier_id = ?", id).Delete(&model.SupplierModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return helper.FromDB(err, "Supplier not found", "")
	}
	if deactivated {
		return helper.JsonOK(c, "Supplier has expenses and was deactivated", fiber.Map{"id": id, "is_active": false})
	}
	return helper.JsonDeleted(c, "Supplier deleted", fiber.Map{"id": id})
}
