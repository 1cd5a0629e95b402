package ui

import "fmt"

// FormatStatus возвращает иконку, цвет и текст для статуса отклика
func FormatStatus(status string) (icon, color, text string) {
	switch status {
	case "applied":
		return IconCheckmark, ColorGreen, "отправлен"
	case "failed":
		return IconCross, ColorRed, "ошибка"
	case "skipped":
		return IconClock, ColorYellow, "пропущен"
	default:
		return IconClock, ColorYellow, status
	}
}

// ClearScreen очищает терминал
func ClearScreen() {
	fmt.Print("\033[H\033[2J")
}
