// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки протоколов (привычек)
var (
	// ErrHabitNotFound — у пользователя нет активного протокола
	ErrHabitNotFound = errors.New("активный протокол не найден")
	// ErrInvalidFrequency — маска частоты содержит неизвестный код дня недели
	ErrInvalidFrequency = errors.New("маска частоты содержит неизвестный день недели")
	// ErrEmptyFrequency — в маске частоты не выбран ни один день
	ErrEmptyFrequency = errors.New("нужно выбрать хотя бы один день недели")
	// ErrNotEligible — допуск ко второму протоколу ещё не получен
	ErrNotEligible = errors.New("допуск ко второму протоколу ещё не получен")
	// ErrEmptyField — обязательное поле протокола пустое
	ErrEmptyField = errors.New("поле не может быть пустым")
)

// Ошибки пользователей
var (
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
	// ErrUserBanned — пользователь заблокирован
	ErrUserBanned = errors.New("пользователь заблокирован")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("у вас нет прав администратора")
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
	// ErrSessionExpired — сессия истекла
	ErrSessionExpired = errors.New("сессия истекла, авторизуйтесь заново")
)
