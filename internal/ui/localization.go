package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyFetch             = "fetch"
	KeyLoad              = "load"
	KeyReveal            = "reveal"
	KeyRemove            = "remove"
	KeyPlot              = "plot"
	KeyOpenTable         = "open_table"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyQuit              = "quit"
	KeyLanguage          = "language"
	KeyCacheDirectory    = "cache_directory"
	KeyMaxParallel       = "max_parallel"
	KeyDefaultColumns    = "default_columns"
	KeyColumns           = "columns"
	KeyXAxis             = "x_axis"
	KeyYAxis             = "y_axis"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyEnterURL          = "enter_url"
	KeySettingsSaved     = "settings_saved"
	KeyFetchStarted      = "fetch_started"
	KeyFetchCompleted    = "fetch_completed"
	KeyAlreadyCached     = "already_cached"
	KeyInvalidURL        = "invalid_url"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyAlreadyInQueue    = "already_in_queue"
	KeyTableLoaded       = "table_loaded"
	KeyNoTable           = "no_table"
	KeySelectYColumn     = "select_y_column"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyErrorLoadingTable = "error_loading_table"
	KeyFilterAll         = "filter_all"
	KeyFilterActive      = "filter_active"
	KeyFilterDone        = "filter_done"
	KeyFilterErrors      = "filter_errors"
	KeyStatusPending     = "status_pending"
	KeyStatusFetching    = "status_fetching"
	KeyStatusCached      = "status_cached"
	KeyStatusCompleted   = "status_completed"
	KeyStatusError       = "status_error"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if text, found := l.texts["en"][key]; found {
		return text
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Tabplot",
		KeyFetch:             "Fetch",
		KeyLoad:              "Load",
		KeyReveal:            "Reveal",
		KeyRemove:            "Remove",
		KeyPlot:              "Plot",
		KeyOpenTable:         "Open table…",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyQuit:              "Quit",
		KeyLanguage:          "Language",
		KeyCacheDirectory:    "Cache Directory",
		KeyMaxParallel:       "Max Parallel Fetches",
		KeyDefaultColumns:    "Default Column Names",
		KeyColumns:           "Columns",
		KeyXAxis:             "X axis",
		KeyYAxis:             "Y axis",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyEnterURL:          "Enter data file URL (https://example.com/data.txt)",
		KeySettingsSaved:     "Settings saved",
		KeyFetchStarted:      "Fetch started",
		KeyFetchCompleted:    "Fetch completed",
		KeyAlreadyCached:     "Already cached",
		KeyInvalidURL:        "Invalid URL",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyAlreadyInQueue:    "Already in queue",
		KeyTableLoaded:       "Loaded %d rows from %s",
		KeyNoTable:           "Load a table first",
		KeySelectYColumn:     "Select at least one Y column",
		KeyErrorOpeningFile:  "Error opening file",
		KeyErrorLoadingTable: "Error loading table",
		KeyFilterAll:         "All",
		KeyFilterActive:      "Active",
		KeyFilterDone:        "Done",
		KeyFilterErrors:      "Errors",
		KeyStatusPending:     "Pending",
		KeyStatusFetching:    "Fetching",
		KeyStatusCached:      "Cached",
		KeyStatusCompleted:   "Completed",
		KeyStatusError:       "Error",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Tabplot",
		KeyFetch:             "Скачать",
		KeyLoad:              "Загрузить",
		KeyReveal:            "Показать",
		KeyRemove:            "Удалить",
		KeyPlot:              "График",
		KeyOpenTable:         "Открыть таблицу…",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyQuit:              "Выход",
		KeyLanguage:          "Язык",
		KeyCacheDirectory:    "Папка кэша",
		KeyMaxParallel:       "Макс. параллельных",
		KeyDefaultColumns:    "Имена столбцов по умолчанию",
		KeyColumns:           "Столбцы",
		KeyXAxis:             "Ось X",
		KeyYAxis:             "Ось Y",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyEnterURL:          "Введите URL файла данных (https://example.com/data.txt)",
		KeySettingsSaved:     "Настройки сохранены",
		KeyFetchStarted:      "Загрузка начата",
		KeyFetchCompleted:    "Загрузка завершена",
		KeyAlreadyCached:     "Уже в кэше",
		KeyInvalidURL:        "Неверный URL",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeyAlreadyInQueue:    "Уже в очереди",
		KeyTableLoaded:       "Загружено строк: %d из %s",
		KeyNoTable:           "Сначала загрузите таблицу",
		KeySelectYColumn:     "Выберите хотя бы один столбец Y",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyErrorLoadingTable: "Ошибка загрузки таблицы",
		KeyFilterAll:         "Все",
		KeyFilterActive:      "Активные",
		KeyFilterDone:        "Готовые",
		KeyFilterErrors:      "Ошибки",
		KeyStatusPending:     "Ожидание",
		KeyStatusFetching:    "Загрузка",
		KeyStatusCached:      "В кэше",
		KeyStatusCompleted:   "Готово",
		KeyStatusError:       "Ошибка",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Tabplot",
		KeyFetch:             "Baixar",
		KeyLoad:              "Carregar",
		KeyReveal:            "Mostrar",
		KeyRemove:            "Remover",
		KeyPlot:              "Gráfico",
		KeyOpenTable:         "Abrir tabela…",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyQuit:              "Sair",
		KeyLanguage:          "Idioma",
		KeyCacheDirectory:    "Diretório de Cache",
		KeyMaxParallel:       "Máx. Downloads Paralelos",
		KeyDefaultColumns:    "Nomes de Colunas Padrão",
		KeyColumns:           "Colunas",
		KeyXAxis:             "Eixo X",
		KeyYAxis:             "Eixo Y",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeyEnterURL:          "Digite a URL do arquivo de dados (https://example.com/data.txt)",
		KeySettingsSaved:     "Configurações salvas",
		KeyFetchStarted:      "Download iniciado",
		KeyFetchCompleted:    "Download concluído",
		KeyAlreadyCached:     "Já em cache",
		KeyInvalidURL:        "URL inválida",
		KeyPleaseEnterURL:    "Por favor, digite uma URL",
		KeyAlreadyInQueue:    "Já na fila",
		KeyTableLoaded:       "%d linhas carregadas de %s",
		KeyNoTable:           "Carregue uma tabela primeiro",
		KeySelectYColumn:     "Selecione pelo menos uma coluna Y",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyErrorLoadingTable: "Erro ao carregar tabela",
		KeyFilterAll:         "Todos",
		KeyFilterActive:      "Ativos",
		KeyFilterDone:        "Concluídos",
		KeyFilterErrors:      "Erros",
		KeyStatusPending:     "Pendente",
		KeyStatusFetching:    "Baixando",
		KeyStatusCached:      "Em cache",
		KeyStatusCompleted:   "Concluído",
		KeyStatusError:       "Erro",
	}
}
