package cpu

import (
	"errors"
)

// CheckWord returns the content problems of a raw control word.
// The engine still executes such words: map dispatch wins over conditional
// dispatch, and the last load signal wins.
func CheckWord(raw uint32) (err error) {
	var errs []error

	if (raw & ^WORD_MASK) != 0 {
		errs = append(errs, ErrWordReserved)
	}

	word := DecodeWord(raw)
	if word.Map && word.Cond {
		errs = append(errs, ErrWordAmbiguous)
	}
	if word.Selects() > 1 {
		errs = append(errs, ErrWordMultiSelect)
	}

	return errors.Join(errs...)
}

// Check returns one *ErrWord for every control word with content problems.
func (mp *Microprogram) Check() (warnings []error) {
	for addr, raw := range mp.Control {
		err := CheckWord(raw)
		if err != nil {
			warnings = append(warnings, &ErrWord{Address: uint8(addr), Raw: raw, Err: err})
		}
	}

	return
}
