package jsondb

// Result is the uniform outcome of executing one statement.
type Result struct {
	Success      bool
	Message      string
	Error        string
	RowsAffected int
	Columns      []string
	Rows         []Row
	// Err keeps the underlying error for errors.Is checks.
	Err error
}

func Failure(err error) Result {
	return Result{
		Success: false,
		Error:   err.Error(),
		Err:     err,
	}
}

func Success(message string, rowsAffected int) Result {
	return Result{
		Success:      true,
		Message:      message,
		RowsAffected: rowsAffected,
	}
}
