package ui

import "fmt"

// PrintWelcome выводит приветствие и список команд
func PrintWelcome() {
	fmt.Println(ColorBold + IconRobot + " Job-Agent v0.1.0" + ColorReset)
	fmt.Println(ColorGray + "Бот автоматических откликов на вакансии" + ColorReset)
	fmt.Println(ColorGray + "Используется: Firefox + OpenAI GPT-4o" + ColorReset)
	fmt.Println()
	PrintHelp()
	fmt.Println(ColorCyan + IconBulb + " Совет:" + ColorReset + " Выполните " + ColorYellow + "login" + ColorReset + " один раз, сессия сохранится в persistent-профиле браузера")
	fmt.Println()
	fmt.Println(ColorGray + "⬆️ ⬇️" + ColorReset + " Используйте стрелки для навигации по истории команд")
	fmt.Println()
}

// PrintHelp выводит список доступных команд
func PrintHelp() {
	fmt.Println(ColorYellow + IconList + " Доступные команды:" + ColorReset)
	fmt.Println("  " + ColorGreen + "run" + ColorReset + "                 - Полный цикл: поиск и отклики")
	fmt.Println("  " + ColorGreen + "login" + ColorReset + "               - Вход на сайт")
	fmt.Println("  " + ColorGreen + "search" + ColorReset + "              - Только поиск, без откликов")
	fmt.Println("  " + ColorGreen + "jobs" + ColorReset + "                - Список отправленных откликов")
	fmt.Println("  " + ColorGreen + "report" + ColorReset + "              - Статистика сессий чат-бота")
	fmt.Println("  " + ColorGreen + "qa list" + ColorReset + "             - Словарь вопрос-ответ")
	fmt.Println("  " + ColorGreen + "qa add" + ColorReset + " <в> | <о>    - Добавить пару в словарь")
	fmt.Println("  " + ColorGreen + "open" + ColorReset + " <url>          - Открыть URL в браузере")
	fmt.Println("  " + ColorGreen + "clear" + ColorReset + "               - Очистить экран")
	fmt.Println("  " + ColorGreen + "exit" + ColorReset + "                - Выход")
	fmt.Println()
}
