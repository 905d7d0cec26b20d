// Package docs Cool Spots API.
//
// Сервис «прохладных мест» Парижа на основе открытых данных.
// Объединяет три источника (оборудование и активности, зелёные зоны, питьевые фонтанчики)
// в единую коллекцию и отдаёт её постранично с фильтрами и полнотекстовым поиском.
//
// Основные возможности:
// - Постраничный список спотов с фильтрами по категории, округу, типу и оплате
// - Поиск с учётом округов (75015, 15e, 15ème arrondissement) и синонимов
// - Варианты фильтров, выведенные из данных
// - Загрузка отдельной записи напрямую из источника
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
