package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"house-rent-api/internal/domain"
)

type PropertyRepo struct{ db *gorm.DB }

func NewPropertyRepo(db *gorm.DB) *PropertyRepo { return &PropertyRepo{db: db} }

func (r *PropertyRepo) Create(p *domain.Property) error { return r.db.Create(p).Error }

func (r *PropertyRepo) FindByID(id string) (*domain.Property, error) {
	var p domain.Property
	err := r.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

// Search 把 PropertyFilter 翻译成 SQL；语义必须与 domain 侧的
// Matches 谓词一致（公共查询路径永远只看 available 的记录）。
func (r *PropertyRepo) Search(f domain.PropertyFilter) ([]domain.Property, error) {
	tx := r.db.Model(&domain.Property{}).Where("available = ?", true)
	if f.Type != "" && f.Type != "all" {
		tx = tx.Where("type = ?", f.Type)
	}
	if f.MinPrice != nil {
		tx = tx.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		tx = tx.Where("price <= ?", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		// 精确匹配而非“至少 N 间”，与线上行为保持一致
		tx = tx.Where("bedrooms = ?", *f.Bedrooms)
	}
	if f.Location != "" {
		tx = tx.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			like, like, like,
		)
	}
	var out []domain.Property
	err := tx.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *PropertyRepo) ListAll() ([]domain.Property, error) {
	var out []domain.Property
	err := r.db.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *PropertyRepo) Update(p *domain.Property) error { return r.db.Save(p).Error }

// Delete 硬删除；返回是否真的删掉了一行
func (r *PropertyRepo) Delete(id string) (bool, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.Property{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
