package models

import "errors"

// 共用的錯誤定義，handlers 透過 errors.Is 對應到 HTTP 狀態碼
var (
	ErrRoomNotFound = errors.New("房間不存在")
	ErrInvalidInput = errors.New("無效的輸入")
)
