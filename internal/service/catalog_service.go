package service

import (
	"context"
	"fmt"
	"time"

	"house-rent-api/internal/core/cache"
	"house-rent-api/internal/domain"
	"house-rent-api/internal/storage"
	"house-rent-api/pkg/utils"
)

// MaxImagesPerProperty 单个房源最多挂的图片数
const MaxImagesPerProperty = 5

const detailCacheTTL = 5 * time.Minute

type CatalogService struct {
	props  domain.PropertyRepository
	cache  cache.ByteCache // 可为 nil（未配置 redis 时直连 DB）
	images storage.ImageStore
}

func NewCatalogService(props domain.PropertyRepository, c cache.ByteCache, images storage.ImageStore) *CatalogService {
	return &CatalogService{props: props, cache: c, images: images}
}

func detailKey(id string) string { return "property:" + id }

// Search 公共目录查询，只返回 available 的记录，按创建时间倒序。
func (s *CatalogService) Search(f domain.PropertyFilter) ([]domain.Property, error) {
	return s.props.Search(f)
}

// ListAll 管理端全量列表，含已下架记录。
func (s *CatalogService) ListAll() ([]domain.Property, error) {
	return s.props.ListAll()
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Property, error) {
	if s.cache != nil {
		p, err := cache.GetOrLoadJSON[domain.Property](s.cache, ctx, detailKey(id), detailCacheTTL,
			func(ctx context.Context) (*domain.Property, error) {
				return s.props.FindByID(id)
			})
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		return p, nil
	}
	p, err := s.props.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// CreateInput 数值字段在传输层已完成字符串到整数的转换，
// 转换失败在那一层就报 400，不会走到这里。
type CreateInput struct {
	Title       string
	Description string
	Price       int
	Location    string
	Bedrooms    int
	Bathrooms   int
	Area        int
	Type        string
	Amenities   []string
	Images      []string // 已落盘的存储文件名，顺序即展示顺序
}

func (in CreateInput) validate() error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	case in.Description == "":
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	case in.Location == "":
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	case in.Price < 0 || in.Bedrooms < 0 || in.Bathrooms < 0 || in.Area < 0:
		return fmt.Errorf("%w: numeric fields must be non-negative", domain.ErrValidation)
	case !domain.ValidPropertyType(in.Type):
		return fmt.Errorf("%w: type must be one of apartment/house/villa/studio", domain.ErrValidation)
	case len(in.Images) > MaxImagesPerProperty:
		return fmt.Errorf("%w: at most %d images", domain.ErrValidation, MaxImagesPerProperty)
	}
	return nil
}

func (s *CatalogService) Create(ctx context.Context, in CreateInput) (*domain.Property, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := &domain.Property{
		ID:          utils.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Location:    in.Location,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Area:        in.Area,
		Type:        in.Type,
		Amenities:   domain.StringList(in.Amenities),
		Images:      domain.StringList(in.Images),
		Available:   true,
	}
	if p.Amenities == nil {
		p.Amenities = domain.StringList{}
	}
	if p.Images == nil {
		p.Images = domain.StringList{}
	}
	if err := s.props.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update 白名单式部分更新；只覆盖给到的字段。
func (s *CatalogService) Update(ctx context.Context, id string, u domain.PropertyUpdate) (*domain.Property, error) {
	if u.Type != nil && !domain.ValidPropertyType(*u.Type) {
		return nil, fmt.Errorf("%w: type must be one of apartment/house/villa/studio", domain.ErrValidation)
	}
	if u.Price != nil && *u.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", domain.ErrValidation)
	}
	if u.Images != nil && len(*u.Images) > MaxImagesPerProperty {
		return nil, fmt.Errorf("%w: at most %d images", domain.ErrValidation, MaxImagesPerProperty)
	}

	p, err := s.props.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	u.Apply(p)
	if err := s.props.Update(p); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, detailKey(id))
	}
	return p, nil
}

// Delete 按 id 硬删除；重复删除统一报 ErrNotFound。
// 图片文件尽力清理，失败不影响删除结果。
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	p, err := s.props.FindByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	ok, err := s.props.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, detailKey(id))
	}
	if s.images != nil {
		for _, img := range p.Images {
			_ = s.images.Delete(ctx, img)
		}
	}
	return nil
}
