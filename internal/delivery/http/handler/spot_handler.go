package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cool-spots/internal/pkg/utils"
	"github.com/cool-spots/internal/pkg/validator"
	"github.com/cool-spots/internal/usecase"
	"github.com/cool-spots/internal/usecase/dto"
)

// SpotHandler - обработчик запросов к спотам
type SpotHandler struct {
	spotUC          *usecase.SpotUseCase
	defaultPageSize int
	logger          *zap.Logger
}

// NewSpotHandler - создание нового SpotHandler
func NewSpotHandler(spotUC *usecase.SpotUseCase, defaultPageSize int, logger *zap.Logger) *SpotHandler {
	return &SpotHandler{
		spotUC:          spotUC,
		defaultPageSize: defaultPageSize,
		logger:          logger,
	}
}

// ListSpots godoc
// @Summary Список спотов
// @Description Возвращает страницу спотов с фильтрами по категории, округу, типу и оплате, а также полнотекстовым поиском
// @Tags Spots
// @Accept json
// @Produce json
// @Param page query int false "Номер страницы (с 1)" default(1)
// @Param page_size query int false "Размер страницы (1-100)" default(8)
// @Param search query string false "Поисковый запрос, например 'piscine 16e'"
// @Param categories query string false "Категории через запятую (activities, green_spaces, water_fountains)"
// @Param districts query string false "Округа через запятую, например 75015"
// @Param types query string false "Типы через запятую"
// @Param paid query string false "Оплата (payant, gratuit)"
// @Success 200 {object} utils.SuccessResponse{data=domain.PaginatedSpots}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/spots [get]
func (h *SpotHandler) ListSpots(c *fiber.Ctx) error {
	req := dto.SpotsRequest{
		Page:       c.QueryInt("page", 1),
		PageSize:   c.QueryInt("page_size", h.defaultPageSize),
		Search:     c.Query("search"),
		Categories: splitList(c.Query("categories")),
		Districts:  splitList(c.Query("districts")),
		Types:      splitList(c.Query("types")),
		Paid:       c.Query("paid"),
	}

	// Валидация
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.spotUC.Query(c.Context(), req.Page, req.PageSize, req.Search, req.Filters())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.TotalCount,
		Page:  result.CurrentPage,
		Limit: req.PageSize,
	})
}

// GetFilterOptions godoc
// @Summary Варианты фильтров
// @Description Возвращает категории, округа, типы и варианты оплаты, присутствующие в данных
// @Tags Spots
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.FilterOptions}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/spots/filters [get]
func (h *SpotHandler) GetFilterOptions(c *fiber.Ctx) error {
	options, err := h.spotUC.GetFilterOptions(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, options, nil)
}

// GetSpot godoc
// @Summary Спот по идентификатору
// @Description Ищет спот в агрегированной коллекции
// @Tags Spots
// @Produce json
// @Param id path string true "Идентификатор спота"
// @Success 200 {object} utils.SuccessResponse{data=dto.SpotDetailResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/spots/{id} [get]
func (h *SpotHandler) GetSpot(c *fiber.Ctx) error {
	spot, err := h.spotUC.GetSpotByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, h.spotUC.SpotDetail(spot), nil)
}

// GetDatasetRecord godoc
// @Summary Запись источника
// @Description Загружает запись напрямую из источника открытых данных, минуя агрегированную коллекцию
// @Tags Spots
// @Produce json
// @Param dataset path string true "Идентификатор источника"
// @Param id path string true "Идентификатор записи"
// @Success 200 {object} utils.SuccessResponse{data=dto.SpotDetailResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/datasets/{dataset}/records/{id} [get]
func (h *SpotHandler) GetDatasetRecord(c *fiber.Ctx) error {
	req := dto.SpotRecordRequest{
		DatasetID: c.Params("dataset"),
		RecordID:  c.Params("id"),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	spot, err := h.spotUC.GetSpotByDataset(c.Context(), req.DatasetID, req.RecordID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, h.spotUC.SpotDetail(spot), nil)
}

// ClearCache godoc
// @Summary Сброс кеша
// @Description Сбрасывает кеш спотов и вариантов фильтров; следующий запрос заново загрузит источники
// @Tags Cache
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/cache/clear [post]
func (h *SpotHandler) ClearCache(c *fiber.Ctx) error {
	if err := h.spotUC.ClearCache(c.Context()); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"cleared": true}, nil)
}

// splitList разбирает список через запятую, пропуская пустые элементы
func splitList(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			result = append(result, p)
		}
	}
	return result
}
