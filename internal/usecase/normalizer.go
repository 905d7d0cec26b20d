package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/cool-spots/internal/domain"
	"github.com/cool-spots/internal/pkg/textutil"
)

// FountainName - отображаемое имя фонтанчика (в источнике имени нет)
const FountainName = "Fontaine à boire"

var parisDistrictRe = regexp.MustCompile(`(?i)^PARIS (\d+)(?:ER|EME) ARRONDISSEMENT$`)

// TransformDistrict переводит "PARIS 15EME ARRONDISSEMENT" в код 75015.
// Остальные значения возвращаются без изменений.
func TransformDistrict(value string) string {
	m := parisDistrictRe.FindStringSubmatch(value)
	if m == nil {
		return value
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return value
	}
	return domain.DistrictCode(n)
}

func geoOf(p *domain.GeoPoint2D) domain.Geo {
	if p == nil {
		return domain.Geo{}
	}
	return domain.Geo{Lat: p.Lat, Lon: p.Lon}
}

func scheduleOf(h domain.WeeklyHours) *domain.Schedule {
	return &domain.Schedule{
		Period:     h.HorairesPeriode,
		OpenStatus: h.StatutOuverture,
		Monday:     h.HorairesLundi,
		Tuesday:    h.HorairesMardi,
		Wednesday:  h.HorairesMercredi,
		Thursday:   h.HorairesJeudi,
		Friday:     h.HorairesVendredi,
		Saturday:   h.HorairesSamedi,
		Sunday:     h.HorairesDimanche,
	}
}

func spotID(id string, category domain.Category, geo domain.Geo) string {
	if id != "" {
		return id
	}
	return domain.FallbackSpotID(category, geo)
}

// TransformActivity преобразует запись об оборудовании/активности в Spot
func TransformActivity(rec domain.ActivityRecord) domain.Spot {
	geo := geoOf(rec.GeoPoint2D)
	return domain.Spot{
		ID:       spotID(string(rec.Identifiant), domain.CategoryActivities, geo),
		Category: domain.CategoryActivities,
		Name:     textutil.TitleCase(rec.Nom),
		Type:     textutil.TitleCase(rec.Type),
		Address:  textutil.TitleCase(rec.Adresse),
		District: string(rec.Arrondissement),
		Geo:      geo,
		Schedule: scheduleOf(rec.WeeklyHours),
		IsPaid:   rec.Payant,
	}
}

// TransformGreenSpace преобразует запись о зелёной зоне в Spot
func TransformGreenSpace(rec domain.GreenSpaceRecord) domain.Spot {
	geo := geoOf(rec.GeoPoint2D)
	return domain.Spot{
		ID:                   spotID(string(rec.Identifiant), domain.CategoryGreenSpaces, geo),
		Category:             domain.CategoryGreenSpaces,
		Name:                 textutil.TitleCase(rec.Nom),
		Type:                 textutil.TitleCase(rec.Type),
		Address:              textutil.TitleCase(rec.Adresse),
		District:             string(rec.Arrondissement),
		Geo:                  geo,
		Schedule:             scheduleOf(rec.WeeklyHours),
		Is24hOpen:            rec.Ouvert24h,
		IsHeatwaveOpening:    rec.CaniculeOuverture,
		IsNightSummerOpening: rec.OuvertureEstivaleNocturne,
		CategoryLabel:        rec.Categorie,
	}
}

// TransformFountain преобразует запись о питьевом фонтанчике в Spot
func TransformFountain(rec domain.FountainRecord) domain.Spot {
	geo := geoOf(rec.GeoPoint2D)

	id := ""
	if rec.GID != nil {
		id = strconv.FormatInt(*rec.GID, 10)
	}

	return domain.Spot{
		ID:          spotID(id, domain.CategoryWaterFountains, geo),
		Category:    domain.CategoryWaterFountains,
		Name:        FountainName,
		Address:     textutil.TitleCase(rec.Voie),
		District:    TransformDistrict(rec.Commune),
		Geo:         geo,
		Model:       rec.Modele,
		IsAvailable: rec.Dispo,
	}
}

// TransformRecord декодирует сырую запись по схеме категории и нормализует её.
// Ошибка декодирования относится только к этой записи.
func TransformRecord(category domain.Category, raw json.RawMessage) (domain.Spot, error) {
	switch category {
	case domain.CategoryActivities:
		var rec domain.ActivityRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return domain.Spot{}, fmt.Errorf("decode activity record: %w", err)
		}
		return TransformActivity(rec), nil

	case domain.CategoryGreenSpaces:
		var rec domain.GreenSpaceRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return domain.Spot{}, fmt.Errorf("decode green space record: %w", err)
		}
		return TransformGreenSpace(rec), nil

	case domain.CategoryWaterFountains:
		var rec domain.FountainRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return domain.Spot{}, fmt.Errorf("decode fountain record: %w", err)
		}
		return TransformFountain(rec), nil
	}

	return domain.Spot{}, fmt.Errorf("unknown category %q", category)
}
