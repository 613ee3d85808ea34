package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

// DefaultCategoryFolder carpeta lógica del asset store para imágenes de categorías.
const DefaultCategoryFolder = "categories"

// IDGenerator asigna el ID de una categoría nueva. Postgres usa UUID; Mongo usa ObjectID.
type IDGenerator func() string

// NewUUID generador por defecto.
func NewUUID() string { return uuid.New().String() }

// CategoryUseCase orquesta validación, subida de imagen, escritura en el repositorio
// y la guarda de borrado por referencias de productos.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	refs     repository.ProductReferenceRepository
	assets   ports.AssetStore
	tx       ports.CategoryTxRunner  // opcional
	cache    ports.CategoryListCache // opcional
	validate *validator.Validate
	log      *logger.Logger
	folder   string
	newID    IDGenerator
	now      func() time.Time
}

// CategoryOption opción funcional para CategoryUseCase.
type CategoryOption func(*CategoryUseCase)

// WithTxRunner ejecuta verificación + borrado dentro de una transacción del store.
func WithTxRunner(tx ports.CategoryTxRunner) CategoryOption {
	return func(uc *CategoryUseCase) { uc.tx = tx }
}

// WithListCache cachea el listado completo; cada mutación exitosa lo invalida.
func WithListCache(cache ports.CategoryListCache) CategoryOption {
	return func(uc *CategoryUseCase) { uc.cache = cache }
}

// WithFolder cambia la carpeta del asset store.
func WithFolder(folder string) CategoryOption {
	return func(uc *CategoryUseCase) {
		if folder != "" {
			uc.folder = folder
		}
	}
}

// WithIDGenerator cambia el generador de IDs.
func WithIDGenerator(gen IDGenerator) CategoryOption {
	return func(uc *CategoryUseCase) {
		if gen != nil {
			uc.newID = gen
		}
	}
}

// WithClock fija el reloj (tests).
func WithClock(now func() time.Time) CategoryOption {
	return func(uc *CategoryUseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	repo repository.CategoryRepository,
	refs repository.ProductReferenceRepository,
	assets ports.AssetStore,
	log *logger.Logger,
	opts ...CategoryOption,
) *CategoryUseCase {
	uc := &CategoryUseCase{
		repo:     repo,
		refs:     refs,
		assets:   assets,
		validate: validator.New(),
		log:      log,
		folder:   DefaultCategoryFolder,
		newID:    NewUUID,
		now:      time.Now,
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create sube la imagen y persiste la categoría. Sin nombre o sin imagen no toca ni el
// asset store ni el repositorio.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryInput) (*dto.CategoryResponse, error) {
	defer uc.release(in.Image)

	in.Name = normalizeName(in.Name)
	if err := uc.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	url, err := uc.upload(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	category := &entity.Category{
		ID:        uc.newID(),
		Name:      in.Name,
		Image:     url,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Insert(ctx, category); err != nil {
		uc.log.Error().Err(err).Str("name", category.Name).Msg("insertar categoría")
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	uc.invalidate(ctx)
	return toCategoryResponse(category), nil
}

// ListAll devuelve todas las categorías, más recientes primero.
func (uc *CategoryUseCase) ListAll(ctx context.Context) ([]dto.CategoryResponse, error) {
	if items, ok := uc.cached(ctx); ok {
		return items, nil
	}
	// La generación se lee antes del repositorio: si una mutación invalida mientras tanto,
	// esta lectura ya no se guarda.
	gen, cacheable := uc.generation(ctx)
	list, err := uc.repo.FindAllSortedByCreatedDesc(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("listar categorías")
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	if cacheable {
		uc.store(ctx, gen, items)
	}
	return items, nil
}

// Update aplica un merge parcial. Si llega imagen se sube primero y solo con éxito se escribe
// el campo image. Un ID inexistente no es error: MatchedCount = 0.
func (uc *CategoryUseCase) Update(ctx context.Context, in dto.UpdateCategoryInput) (*dto.UpdateResultResponse, error) {
	defer uc.release(in.Image)

	in.ID = strings.TrimSpace(in.ID)
	if in.Name != nil {
		name := normalizeName(*in.Name)
		if name == "" {
			in.Name = nil
		} else {
			in.Name = &name
		}
	}
	if err := uc.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fields := entity.CategoryFields{Name: in.Name}
	if in.Image != nil {
		url, err := uc.upload(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		fields.Image = &url
	}
	fields.UpdatedAt = uc.now()

	res, err := uc.repo.UpdateFields(ctx, in.ID, fields)
	if err != nil {
		uc.log.Error().Err(err).Str("category_id", in.ID).Msg("actualizar categoría")
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if res.MatchedCount > 0 {
		uc.invalidate(ctx)
	}
	return &dto.UpdateResultResponse{
		Acknowledged:  res.Acknowledged,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// Delete borra la categoría solo si ningún producto la referencia.
// Repetir el borrado de un ID inexistente siempre es seguro (DeletedCount = 0).
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) (*dto.DeleteResultResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: _id requerido", domain.ErrValidation)
	}

	var res entity.DeleteResult
	guarded := func(categoryRepo repository.CategoryRepository, refs repository.ProductReferenceRepository) error {
		var err error
		res, err = deleteIfUnreferenced(ctx, categoryRepo, refs, id)
		return err
	}

	var err error
	if uc.tx != nil {
		err = uc.tx.RunCategoryTx(ctx, id, guarded)
	} else {
		// Sin transacción: un producto puede asociarse entre el conteo y el borrado.
		err = guarded(uc.repo, uc.refs)
	}
	if err != nil {
		if !isDomainError(err) {
			uc.log.Error().Err(err).Str("category_id", id).Msg("eliminar categoría")
			err = fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		return nil, err
	}
	if res.DeletedCount > 0 {
		uc.invalidate(ctx)
	}
	return &dto.DeleteResultResponse{Acknowledged: res.Acknowledged, DeletedCount: res.DeletedCount}, nil
}

func deleteIfUnreferenced(
	ctx context.Context,
	categoryRepo repository.CategoryRepository,
	refs repository.ProductReferenceRepository,
	id string,
) (entity.DeleteResult, error) {
	count, err := refs.CountByCategory(ctx, id)
	if err != nil {
		return entity.DeleteResult{}, fmt.Errorf("contar productos: %w", err)
	}
	if count > 0 {
		return entity.DeleteResult{}, domain.ErrConflict
	}
	return categoryRepo.DeleteByID(ctx, id)
}

func (uc *CategoryUseCase) upload(ctx context.Context, img dto.ImageFile) (string, error) {
	url, err := uc.assets.Upload(ctx, img.Path(), uc.folder)
	if err != nil {
		uc.log.Error().Err(err).Str("file", img.Filename()).Str("folder", uc.folder).Msg("subir imagen")
		return "", fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}
	if url == "" {
		return "", fmt.Errorf("%w: el asset store no devolvió URL", domain.ErrUpload)
	}
	return url, nil
}

// release libera el archivo temporal. Un fallo aquí solo se registra: nunca reemplaza el error original.
func (uc *CategoryUseCase) release(img dto.ImageFile) {
	if img == nil {
		return
	}
	if err := img.Release(); err != nil {
		uc.log.Warn().Err(err).Str("path", img.Path()).Msg("liberar archivo temporal")
	}
}

func (uc *CategoryUseCase) cached(ctx context.Context) ([]dto.CategoryResponse, bool) {
	if uc.cache == nil {
		return nil, false
	}
	data, ok, err := uc.cache.Get(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("leer caché de categorías")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var items []dto.CategoryResponse
	if err := json.Unmarshal(data, &items); err != nil {
		uc.log.Warn().Err(err).Msg("decodificar caché de categorías")
		return nil, false
	}
	if items == nil {
		items = []dto.CategoryResponse{}
	}
	return items, true
}

func (uc *CategoryUseCase) generation(ctx context.Context) (uint64, bool) {
	if uc.cache == nil {
		return 0, false
	}
	gen, err := uc.cache.Generation(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("leer generación de caché de categorías")
		return 0, false
	}
	return gen, true
}

func (uc *CategoryUseCase) store(ctx context.Context, gen uint64, items []dto.CategoryResponse) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	stored, err := uc.cache.Set(ctx, gen, data)
	if err != nil {
		uc.log.Warn().Err(err).Msg("guardar caché de categorías")
		return
	}
	if !stored {
		uc.log.Debug().Uint64("generation", gen).Msg("listado obsoleto, no se guarda en caché")
	}
}

func (uc *CategoryUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar caché de categorías")
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrPersistence)
}

func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Image:     c.Image,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
