package testutils

import (
	. "github.com/onsi/gomega"
)

func Must[T any](o T, err error) T {
	ExpectWithOffset(1, err).To(Succeed())
	return o
}

func Must2[T, U any](o T, p U, err error) (T, U) {
	ExpectWithOffset(1, err).To(Succeed())
	return o, p
}

func MustBeSuccessful(err error) {
	ExpectWithOffset(1, err).To(Succeed())
}

func MustFail(err error) error {
	ExpectWithOffset(1, err).To(HaveOccurred())
	return err
}
