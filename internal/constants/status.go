package constants

// Status line messages. They are user facing and kept in Portuguese.
const (
	StatusEditing       = "Editando..."
	StatusSavedPrefix   = "Salvo automaticamente "
	StatusLockedNoEdit  = "Página travada - não é possível editar"
	StatusLocked        = "Página travada"
	StatusUnlocked      = "Página destravada"
	StatusEntryLoaded   = "Entrada carregada"
	StatusEventSaved    = "Evento salvo com sucesso"
	StatusEventRequired = "Data e título são obrigatórios!"
	StatusRestored      = "Dados restaurados com sucesso!"
	StatusRestoreFailed = "Erro ao restaurar dados: arquivo inválido"
	StatusBackupCreated = "Backup criado: "
	StatusThemeChanged  = "Tema alterado"
	StatusIntervalSet   = "Intervalo de salvamento alterado"
	StatusNoBackups     = "Nenhum backup encontrado"
	StatusSaveFailed    = "Erro ao salvar: "
	NoEntryForDay       = "Nenhuma entrada neste dia."
	UntitledEntry       = "Sem título"
	EventsHeading       = "Compromissos:"
	DiaryHeading        = "Diário:"
)
