package periph

import (
	"bspcore-go/errcode"
	"bspcore-go/x/strconvx"
)

// Errno values surfaced to the interpreter. They match POSIX numbering.
type Errno int

const (
	EIO       Errno = 5
	ENOMEM    Errno = 12
	ENODEV    Errno = 19
	EINVAL    Errno = 22
	ETIMEDOUT Errno = 110
)

var errnoNames = map[Errno]string{
	EIO:       "EIO",
	ENOMEM:    "ENOMEM",
	ENODEV:    "ENODEV",
	EINVAL:    "EINVAL",
	ETIMEDOUT: "ETIMEDOUT",
}

func (e Errno) String() string {
	if s, ok := errnoNames[e]; ok {
		return s
	}
	return "E" + strconvx.Itoa(int(e))
}

// OSError is the payload raised through the unwind chain when a peripheral
// call fails.
type OSError struct {
	Errno Errno
	Op    string
	Err   error
}

func (e *OSError) Error() string {
	s := "[Errno " + strconvx.Itoa(int(e.Errno)) + "] " + e.Errno.String()
	if e.Op != "" {
		s += ": " + e.Op
	}
	return s
}

func (e *OSError) Unwrap() error { return e.Err }

func (e *OSError) Code() errcode.Code {
	switch e.Errno {
	case ENOMEM:
		return errcode.NoMemory
	case EINVAL:
		return errcode.InvalidParams
	case ETIMEDOUT:
		return errcode.Timeout
	case EIO, ENODEV:
		return errcode.IO
	}
	return errcode.Error
}
