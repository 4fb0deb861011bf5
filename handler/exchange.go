package handler

import (
	"errors"
	"os"

	"go.uber.org/zap"
)

// Interface selects how the invocation and the response are exchanged
// with the handler process.
type Interface string

const (
	// InterfaceStdio passes the invocation on stdin, and reads the
	// response from stdout.
	InterfaceStdio Interface = "stdio"

	// InterfaceFile passes the paths of a request and a response file
	// as the last two arguments, and in the env.
	InterfaceFile Interface = "file"
)

const (
	// RequestFileVar names the request file in the env of a file
	// interface process.
	RequestFileVar = "REQUEST_FILE_NAME"

	// ResponseFileVar names the file a file interface process writes
	// its response to.
	ResponseFileVar = "RESPONSE_FILE_NAME"
)

// exchangeFiles are the temp files of a file interface run.
type exchangeFiles struct {
	request  string
	response string
}

func newExchangeFiles(input []byte, log *zap.Logger) (*exchangeFiles, error) {
	reqFile, err := os.CreateTemp("", "request-data-*")
	if err != nil {
		log.Error("error creating temp req file", zap.Error(err))
		return nil, err
	}

	resFile, err := os.CreateTemp("", "response-data-*")
	if err != nil {
		log.Error("error creating temp res file", zap.Error(err))
		reqFile.Close()
		os.Remove(reqFile.Name())
		return nil, err
	}

	files := &exchangeFiles{
		request:  reqFile.Name(),
		response: resFile.Name(),
	}

	_, writeErr := reqFile.Write(input)

	if err := errors.Join(writeErr, reqFile.Close(), resFile.Close()); err != nil {
		log.Error("error writing temp req file", zap.Error(err))
		files.remove()
		return nil, err
	}

	return files, nil
}

func (f *exchangeFiles) readResponse() ([]byte, error) {
	return os.ReadFile(f.response)
}

func (f *exchangeFiles) remove() {
	os.Remove(f.request)
	os.Remove(f.response)
}
