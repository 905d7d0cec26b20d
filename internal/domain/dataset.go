package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
)

var (
	numericIDRe = regexp.MustCompile(`^\d+$`)
	recordIDRe  = regexp.MustCompile(`^[\p{L}\p{N}_.-]+$`)
)

// Dataset - описание одного источника открытых данных
type Dataset struct {
	ID       string
	Category Category
	// URL полной выгрузки в JSON
	URL string
	// BaseURL каталога для запросов отдельных записей
	BaseURL string
}

// IDField возвращает имя поля идентификатора в схеме источника
func (d Dataset) IDField() string {
	if d.Category == CategoryWaterFountains {
		return "gid"
	}
	return "identifiant"
}

// ValidRecordID проверяет, что идентификатор можно подставить в условие where:
// gid фонтанчиков только цифры, остальные только буквы, цифры и "_.-"
func (d Dataset) ValidRecordID(id string) bool {
	if d.Category == CategoryWaterFountains {
		return numericIDRe.MatchString(id)
	}
	return recordIDRe.MatchString(id)
}

// ValidRecordID проверяет идентификатор без привязки к источнику
func ValidRecordID(id string) bool {
	return recordIDRe.MatchString(id)
}

// GeoPoint2D - точка в формате opendatasoft
type GeoPoint2D struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeeklyHours - поля расписания, общие для activities и green_spaces
type WeeklyHours struct {
	HorairesPeriode  string `json:"horaires_periode"`
	StatutOuverture  string `json:"statut_ouverture"`
	HorairesLundi    string `json:"horaires_lundi"`
	HorairesMardi    string `json:"horaires_mardi"`
	HorairesMercredi string `json:"horaires_mercredi"`
	HorairesJeudi    string `json:"horaires_jeudi"`
	HorairesVendredi string `json:"horaires_vendredi"`
	HorairesSamedi   string `json:"horaires_samedi"`
	HorairesDimanche string `json:"horaires_dimanche"`
}

// ActivityRecord - запись датасета ilots-de-fraicheur-equipements-activites
type ActivityRecord struct {
	Identifiant    LooseString `json:"identifiant"`
	Nom            string      `json:"nom"`
	Type           string      `json:"type"`
	Adresse        string      `json:"adresse"`
	Arrondissement LooseString `json:"arrondissement"`
	GeoPoint2D     *GeoPoint2D `json:"geo_point_2d"`
	WeeklyHours
	Payant Flag `json:"payant"`
}

// GreenSpaceRecord - запись датасета ilots-de-fraicheur-espaces-verts-frais
type GreenSpaceRecord struct {
	Identifiant    LooseString `json:"identifiant"`
	Nom            string      `json:"nom"`
	Type           string      `json:"type"`
	Adresse        string      `json:"adresse"`
	Arrondissement LooseString `json:"arrondissement"`
	GeoPoint2D     *GeoPoint2D `json:"geo_point_2d"`
	WeeklyHours
	Ouvert24h                 Flag   `json:"ouvert_24h"`
	CaniculeOuverture         Flag   `json:"canicule_ouverture"`
	OuvertureEstivaleNocturne Flag   `json:"ouverture_estivale_nocturne"`
	Categorie                 string `json:"categorie"`
}

// FountainRecord - запись датасета fontaines-a-boire
type FountainRecord struct {
	GID        *int64      `json:"gid"`
	Voie       string      `json:"voie"`
	Commune    string      `json:"commune"`
	GeoPoint2D *GeoPoint2D `json:"geo_point_2d"`
	Modele     string      `json:"modele"`
	Dispo      Flag        `json:"dispo"`
}

// LooseString - строковое поле, которое источник иногда присылает числом
type LooseString string

// UnmarshalJSON принимает строку, число или null
func (s *LooseString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = LooseString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*s = LooseString(num.String())
	return nil
}
