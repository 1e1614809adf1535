package wire

// Record is a DNS resource record: a name, type, class and TTL together
// with a typed payload.
type Record struct {
	Name  Name
	Type  Type
	Class Class
	TTL   uint32

	// CacheFlush is the mDNS "cache flush" flag, carried in the top bit of
	// the class word (RFC-6762 section 18.13). It is always false in
	// conventional unicast DNS.
	CacheFlush bool

	// Data is the record's payload. Its concrete type corresponds to the
	// record's Type field; records of unrecognized types carry Opaque data.
	Data RData
}

func (e *encoder) writeRecord(r *Record) error {
	if err := e.writeName(r.Name); err != nil {
		return err
	}

	class := uint16(r.Class) &^ classFlagBit
	if r.CacheFlush {
		class |= classFlagBit
	}

	e.writeUint16(uint16(r.Type))
	e.writeUint16(class)
	e.writeUint32(r.TTL)

	// RDLENGTH is not known until the payload has been written; reserve the
	// field and backpatch it afterwards.
	lengthOffset := len(e.buf)
	e.writeUint16(0)

	start := len(e.buf)
	if err := r.Data.writeTo(e); err != nil {
		return err
	}

	e.patchUint16(lengthOffset, uint16(len(e.buf)-start))

	return nil
}

func (d *decoder) readRecord(r *Record) error {
	name, err := d.readName()
	if err != nil {
		return err
	}

	rtype, err := d.readUint16()
	if err != nil {
		return err
	}

	class, err := d.readUint16()
	if err != nil {
		return err
	}

	ttl, err := d.readUint32()
	if err != nil {
		return err
	}

	rdlength, err := d.readUint16()
	if err != nil {
		return err
	}

	if d.remaining() < int(rdlength) {
		return protocolErrorf("RDATA extends past end of message")
	}

	*r = Record{
		Name:       name,
		Type:       Type(rtype),
		Class:      Class(class &^ classFlagBit),
		CacheFlush: class&classFlagBit != 0,
		TTL:        ttl,
	}

	start := d.pos

	if r.Data, err = d.readRData(r.Type, int(rdlength)); err != nil {
		return err
	}

	if d.pos > start+int(rdlength) {
		return protocolErrorf("RDATA payload extends past its declared length")
	}

	// Always advance to the end of the declared RDATA, even if the payload
	// parser consumed less; this tolerates record shapes with trailing data
	// we do not understand.
	d.pos = start + int(rdlength)

	return nil
}

// readRData decodes the payload for a record of the given type.
func (d *decoder) readRData(t Type, rdlength int) (RData, error) {
	switch t {
	case TypeA:
		if rdlength != 4 {
			return nil, protocolErrorf("A record RDATA is %d bytes, expected 4", rdlength)
		}

		addr, err := d.readBytes(4)
		if err != nil {
			return nil, err
		}

		return A{Addr: addr}, nil

	case TypeAAAA:
		if rdlength != 16 {
			return nil, protocolErrorf("AAAA record RDATA is %d bytes, expected 16", rdlength)
		}

		addr, err := d.readBytes(16)
		if err != nil {
			return nil, err
		}

		return AAAA{Addr: addr}, nil

	case TypeTXT:
		return d.readTXT(rdlength)

	case TypeSRV:
		var s SRV
		var err error

		if s.Priority, err = d.readUint16(); err != nil {
			return nil, err
		}
		if s.Weight, err = d.readUint16(); err != nil {
			return nil, err
		}
		if s.Port, err = d.readUint16(); err != nil {
			return nil, err
		}
		if s.Target, err = d.readName(); err != nil {
			return nil, err
		}

		return s, nil

	case TypePTR:
		target, err := d.readName()
		if err != nil {
			return nil, err
		}

		return PTR{Target: target}, nil

	default:
		data, err := d.readBytes(rdlength)
		if err != nil {
			return nil, err
		}

		return Opaque{Data: data}, nil
	}
}
