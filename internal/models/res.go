package models

type ApiResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	BookingID string      `json:"bookingID,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Error:   err,
	}
}

// BookingResponse is the create-booking outcome shape: a success flag, a
// human-readable message and, when accepted, the allocated booking ID.
func BookingResponse(success bool, message, bookingID string) ApiResponse {
	return ApiResponse{
		Success:   success,
		Message:   message,
		BookingID: bookingID,
	}
}
