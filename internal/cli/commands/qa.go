package commands

import (
	"fmt"
	"strings"

	"jobAgent/internal/cli/ui"
	"jobAgent/internal/qastore"
)

// QAHandler обрабатывает команды словаря вопрос-ответ.
type QAHandler struct {
	store *qastore.Store
}

func NewQAHandler(store *qastore.Store) *QAHandler {
	return &QAHandler{store: store}
}

// List выводит содержимое словаря.
func (h *QAHandler) List() {
	entries := h.store.Entries()
	if len(entries) == 0 {
		fmt.Println(ui.ColorGray + "Словарь пуст" + ui.ColorReset)
		return
	}

	fmt.Printf("\n"+ui.ColorBold+"=== Словарь (%d) ==="+ui.ColorReset+"\n", len(entries))
	for _, entry := range entries {
		fmt.Printf(ui.ColorCyan+"В:"+ui.ColorReset+" %s\n", entry.Question)
		fmt.Printf(ui.ColorGreen+"О:"+ui.ColorReset+" %s\n\n", entry.Answer)
	}
}

// Add разбирает строку "вопрос | ответ" и добавляет пару в словарь.
func (h *QAHandler) Add(args string) {
	parts := strings.SplitN(args, "|", 2)
	if len(parts) != 2 {
		fmt.Println(ui.ColorRed + ui.IconCross + " Формат: qa add <вопрос> | <ответ>" + ui.ColorReset)
		return
	}

	question := strings.TrimSpace(parts[0])
	answer := strings.TrimSpace(parts[1])

	if err := h.store.Add(question, answer); err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка добавления:"+ui.ColorReset+" %v\n", err)
		return
	}
	fmt.Println(ui.ColorGreen + ui.IconCheckmark + " Пара добавлена в словарь" + ui.ColorReset)
}
