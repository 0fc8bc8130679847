package serverutils

type SuccessBody[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func SuccessResponse[T any](message string, data T) SuccessBody[T] {
	return SuccessBody[T]{
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) ErrorBody {
	return ErrorBody{
		Code:    code,
		Message: message,
	}
}
